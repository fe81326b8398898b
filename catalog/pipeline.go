package catalog

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/storage"
)

// WarmTask is the job that recomputes memoized lists after a mutation.
const WarmTask = "catalog.warm"

// Storage prefixes for product assets.
const (
	FilesPrefix  = "products/files"
	ImagesPrefix = "products/images"
)

// warmDedupWindow collapses bursts of mutations into one warm job.
const warmDedupWindow = 10 * time.Second

// Enqueuer schedules background tasks. *job.Manager satisfies it.
type Enqueuer interface {
	Enqueue(ctx context.Context, name string, payload any, opts ...job.EnqueueOption) error
}

// Pipeline runs admin mutations: persistence, asset storage and cache
// invalidation.
type Pipeline struct {
	products Products
	storage  storage.Storage
	catalog  *Catalog
	jobs     Enqueuer
	log      *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithEnqueuer enables the warm job after mutations. Without it the lists
// are only invalidated.
func WithEnqueuer(e Enqueuer) PipelineOption {
	return func(p *Pipeline) {
		p.jobs = e
	}
}

func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPipeline returns a Pipeline writing products through products and
// their assets to store. c is invalidated after every mutation.
func NewPipeline(products Products, store storage.Storage, c *Catalog, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		products: products,
		storage:  store,
		catalog:  c,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddProduct stores both uploads, then inserts the product as a draft.
// Uploads already written are removed when a later step fails.
func (p *Pipeline) AddProduct(ctx context.Context, in NewProduct) (Product, error) {
	if in.File == nil || in.Image == nil {
		return Product{}, ErrInvalidInput
	}

	file, err := p.storeFile(ctx, in.File)
	if err != nil {
		return Product{}, errors.Join(ErrUpload, err)
	}
	image, err := p.storeImage(ctx, in.Image)
	if err != nil {
		p.cleanup(ctx, file.Key)
		return Product{}, errors.Join(ErrUpload, err)
	}

	product, err := p.products.Create(ctx, CreateParams{
		Name:         in.Name,
		PriceInCents: in.PriceInCents,
		Description:  in.Description,
		FilePath:     file.Key,
		ImagePath:    image.Key,
	})
	if err != nil {
		p.cleanup(ctx, file.Key, image.Key)
		return Product{}, err
	}

	p.changed(ctx)
	return product, nil
}

// UpdateProduct rewrites the text fields and replaces the assets uploaded
// again. New uploads are removed when the update fails; the replaced ones
// are removed once it succeeds.
func (p *Pipeline) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductUpdate) (Product, error) {
	current, err := p.products.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	params := UpdateParams{
		Name:         in.Name,
		PriceInCents: in.PriceInCents,
		Description:  in.Description,
		FilePath:     current.FilePath,
		ImagePath:    current.ImagePath,
	}
	var uploaded, replaced []string

	if in.File != nil {
		file, err := p.storeFile(ctx, in.File)
		if err != nil {
			return Product{}, errors.Join(ErrUpload, err)
		}
		uploaded = append(uploaded, file.Key)
		replaced = append(replaced, current.FilePath)
		params.FilePath = file.Key
	}
	if in.Image != nil {
		image, err := p.storeImage(ctx, in.Image)
		if err != nil {
			p.cleanup(ctx, uploaded...)
			return Product{}, errors.Join(ErrUpload, err)
		}
		uploaded = append(uploaded, image.Key)
		replaced = append(replaced, current.ImagePath)
		params.ImagePath = image.Key
	}

	product, err := p.products.Update(ctx, id, params)
	if err != nil {
		p.cleanup(ctx, uploaded...)
		return Product{}, err
	}
	p.cleanup(ctx, replaced...)

	p.changed(ctx)
	return product, nil
}

// ToggleAvailability flips whether the product is for sale.
func (p *Pipeline) ToggleAvailability(ctx context.Context, id uuid.UUID) (Product, error) {
	product, err := p.products.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if err := p.products.SetAvailability(ctx, id, !product.IsAvailableForPurchase); err != nil {
		return Product{}, err
	}
	product.IsAvailableForPurchase = !product.IsAvailableForPurchase

	p.changed(ctx)
	return product, nil
}

// DeleteProduct removes the row and then both stored assets. A product
// with orders is kept and ErrHasOrders is returned.
func (p *Pipeline) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := p.products.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := p.products.Delete(ctx, id); err != nil {
		return err
	}
	p.cleanup(ctx, product.FilePath, product.ImagePath)

	p.changed(ctx)
	return nil
}

// changed runs after a committed mutation; its failures are logged only.
func (p *Pipeline) changed(ctx context.Context) {
	if err := p.catalog.Invalidate(ctx); err != nil {
		p.log.ErrorContext(ctx, "catalog invalidation failed", slog.Any("error", err))
	}
	if p.jobs == nil {
		return
	}
	if err := p.jobs.Enqueue(ctx, WarmTask, nil, job.UniqueFor(warmDedupWindow)); err != nil {
		p.log.ErrorContext(ctx, "enqueue catalog warm failed", slog.Any("error", err))
	}
}

func (p *Pipeline) storeFile(ctx context.Context, fh *multipart.FileHeader) (*storage.Object, error) {
	file, err := storage.PutFile(ctx, p.storage, fh,
		storage.WithPrefix(FilesPrefix), storage.WithACL(storage.ACLPrivate))
	if err != nil {
		return nil, err
	}
	p.log.InfoContext(ctx, "product file stored",
		slog.String("key", file.Key), slog.Int64("size", file.Size))
	return file, nil
}

func (p *Pipeline) storeImage(ctx context.Context, fh *multipart.FileHeader) (*storage.Object, error) {
	image, err := storage.PutFile(ctx, p.storage, fh,
		storage.WithPrefix(ImagesPrefix), storage.WithACL(storage.ACLPublicRead))
	if err != nil {
		return nil, err
	}
	p.log.InfoContext(ctx, "product image stored",
		slog.String("key", image.Key), slog.String("content_type", image.ContentType))
	return image, nil
}

func (p *Pipeline) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := p.storage.Delete(ctx, key); err != nil {
			p.log.WarnContext(ctx, "stored asset cleanup failed",
				slog.String("key", key), slog.Any("error", err))
		}
	}
}
