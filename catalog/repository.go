package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Products is the persistence the catalog and the pipeline need.
type Products interface {
	MostPopular(ctx context.Context, limit int) ([]Product, error)
	Newest(ctx context.Context, limit int) ([]Product, error)
	ListAvailable(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (Product, error)
	Create(ctx context.Context, p CreateParams) (Product, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateParams) (Product, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository runs raw SQL against PostgreSQL.
type Repository struct {
	db DBTX
}

func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

// WithTx returns a Repository bound to tx.
func (r *Repository) WithTx(tx pgx.Tx) *Repository {
	return &Repository{db: tx}
}

const selectProducts = `
SELECT p.id, p.name, p.price_in_cents, p.description, p.file_path, p.image_path,
       p.is_available_for_purchase, p.created_at, p.updated_at,
       count(o.id) AS order_count
FROM products p
LEFT JOIN orders o ON o.product_id = p.id`

const (
	mostPopularSQL = selectProducts + `
WHERE p.is_available_for_purchase
GROUP BY p.id
ORDER BY order_count DESC, p.created_at DESC
LIMIT $1`

	newestSQL = selectProducts + `
WHERE p.is_available_for_purchase
GROUP BY p.id
ORDER BY p.created_at DESC
LIMIT $1`

	listAvailableSQL = selectProducts + `
WHERE p.is_available_for_purchase
GROUP BY p.id
ORDER BY p.name, p.id`

	listAllSQL = selectProducts + `
GROUP BY p.id
ORDER BY p.name, p.id`

	getSQL = selectProducts + `
WHERE p.id = $1
GROUP BY p.id`

	createSQL = `
INSERT INTO products (name, price_in_cents, description, file_path, image_path, is_available_for_purchase)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, price_in_cents, description, file_path, image_path,
          is_available_for_purchase, created_at, updated_at, 0::bigint AS order_count`

	updateSQL = `
WITH updated AS (
    UPDATE products
    SET name = $2, price_in_cents = $3, description = $4, file_path = $5, image_path = $6,
        updated_at = now()
    WHERE id = $1
    RETURNING *
)
SELECT u.id, u.name, u.price_in_cents, u.description, u.file_path, u.image_path,
       u.is_available_for_purchase, u.created_at, u.updated_at,
       (SELECT count(*) FROM orders o WHERE o.product_id = u.id) AS order_count
FROM updated u`

	setAvailabilitySQL = `
UPDATE products SET is_available_for_purchase = $2, updated_at = now()
WHERE id = $1`

	deleteSQL = `DELETE FROM products WHERE id = $1`

	createOrderSQL = `
INSERT INTO orders (product_id, price_paid_in_cents) VALUES ($1, $2)`
)

// MostPopular lists available products by order count, newest first on ties.
func (r *Repository) MostPopular(ctx context.Context, limit int) ([]Product, error) {
	return r.list(ctx, mostPopularSQL, limit)
}

func (r *Repository) Newest(ctx context.Context, limit int) ([]Product, error) {
	return r.list(ctx, newestSQL, limit)
}

func (r *Repository) ListAvailable(ctx context.Context) ([]Product, error) {
	return r.list(ctx, listAvailableSQL)
}

// ListAll includes products that are not for sale.
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	return r.list(ctx, listAllSQL)
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	rows, err := r.db.Query(ctx, getSQL, id)
	if err != nil {
		return Product{}, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Product])
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repository) Create(ctx context.Context, in CreateParams) (Product, error) {
	rows, err := r.db.Query(ctx, createSQL,
		in.Name, in.PriceInCents, in.Description, in.FilePath, in.ImagePath, in.IsAvailableForPurchase)
	if err != nil {
		return Product{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Product])
}

// Update rewrites the editable columns and returns the stored row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, in UpdateParams) (Product, error) {
	rows, err := r.db.Query(ctx, updateSQL,
		id, in.Name, in.PriceInCents, in.Description, in.FilePath, in.ImagePath)
	if err != nil {
		return Product{}, err
	}
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Product])
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	tag, err := r.db.Exec(ctx, setAvailabilitySQL, id, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete fails with ErrHasOrders while orders reference the product.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteSQL, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return errors.Join(ErrHasOrders, err)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateOrder records a purchase. Only the seed command calls it.
func (r *Repository) CreateOrder(ctx context.Context, productID uuid.UUID, pricePaidInCents int64) error {
	_, err := r.db.Exec(ctx, createOrderSQL, productID, pricePaidInCents)
	return err
}

func (r *Repository) list(ctx context.Context, sql string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Product])
}

var _ Products = (*Repository)(nil)
