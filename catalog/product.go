package catalog

import (
	"math"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// MaxPriceInCents is the largest price the products table can hold.
const MaxPriceInCents int64 = math.MaxInt32

// Product is a catalog row. OrderCount is derived from orders and is zero
// on freshly created rows.
type Product struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	Name                   string    `db:"name" json:"name"`
	PriceInCents           int64     `db:"price_in_cents" json:"price_in_cents"`
	Description            string    `db:"description" json:"description"`
	FilePath               string    `db:"file_path" json:"file_path"`
	ImagePath              string    `db:"image_path" json:"image_path"`
	IsAvailableForPurchase bool      `db:"is_available_for_purchase" json:"is_available_for_purchase"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
	OrderCount             int64     `db:"order_count" json:"order_count"`
}

// CreateParams is what Repository.Create inserts.
type CreateParams struct {
	Name                   string
	PriceInCents           int64
	Description            string
	FilePath               string
	ImagePath              string
	IsAvailableForPurchase bool
}

// NewProduct is a validated add-product submission.
type NewProduct struct {
	Name         string
	PriceInCents int64
	Description  string
	File         *multipart.FileHeader
	Image        *multipart.FileHeader
}

// UpdateParams is what Repository.Update writes. Availability is changed
// through SetAvailability only.
type UpdateParams struct {
	Name         string
	PriceInCents int64
	Description  string
	FilePath     string
	ImagePath    string
}

// ProductUpdate is a validated edit-product submission. A nil upload keeps
// the stored asset.
type ProductUpdate struct {
	Name         string
	PriceInCents int64
	Description  string
	File         *multipart.FileHeader
	Image        *multipart.FileHeader
}
