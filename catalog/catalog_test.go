package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/job"
	"github.com/dmitrymomot/storefront/pkg/memo"
	"github.com/dmitrymomot/storefront/pkg/storage"
)

var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type fakeProducts struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]catalog.Product
	orders    map[uuid.UUID]int
	calls     map[string]int
	createErr error
	updateErr error
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{
		rows:   make(map[uuid.UUID]catalog.Product),
		orders: make(map[uuid.UUID]int),
		calls:  make(map[string]int),
	}
}

func (f *fakeProducts) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeProducts) list(method string, available bool) []catalog.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++

	out := make([]catalog.Product, 0, len(f.rows))
	for _, p := range f.rows {
		if available && !p.IsAvailableForPurchase {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeProducts) MostPopular(context.Context, int) ([]catalog.Product, error) {
	return f.list("MostPopular", true), nil
}

func (f *fakeProducts) Newest(context.Context, int) ([]catalog.Product, error) {
	return f.list("Newest", true), nil
}

func (f *fakeProducts) ListAvailable(context.Context) ([]catalog.Product, error) {
	return f.list("ListAvailable", true), nil
}

func (f *fakeProducts) ListAll(context.Context) ([]catalog.Product, error) {
	return f.list("ListAll", false), nil
}

func (f *fakeProducts) Get(_ context.Context, id uuid.UUID) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) Create(_ context.Context, in catalog.CreateParams) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return catalog.Product{}, f.createErr
	}
	p := catalog.Product{
		ID:                     uuid.New(),
		Name:                   in.Name,
		PriceInCents:           in.PriceInCents,
		Description:            in.Description,
		FilePath:               in.FilePath,
		ImagePath:              in.ImagePath,
		IsAvailableForPurchase: in.IsAvailableForPurchase,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, id uuid.UUID, in catalog.UpdateParams) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return catalog.Product{}, f.updateErr
	}
	p, ok := f.rows[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	p.Name = in.Name
	p.PriceInCents = in.PriceInCents
	p.Description = in.Description
	p.FilePath = in.FilePath
	p.ImagePath = in.ImagePath
	p.UpdatedAt = time.Now()
	f.rows[id] = p
	return p, nil
}

func (f *fakeProducts) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.IsAvailableForPurchase = available
	f.rows[id] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return catalog.ErrNotFound
	}
	if f.orders[id] > 0 {
		return catalog.ErrHasOrders
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeProducts) add(name string, available bool) catalog.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := catalog.Product{ID: uuid.New(), Name: name, IsAvailableForPurchase: available}
	f.rows[p.ID] = p
	return p
}

// failingStorage fails the Put call with index failOn (1-based).
type failingStorage struct {
	storage.Storage

	mu     sync.Mutex
	puts   int
	failOn int
}

func (s *failingStorage) Put(ctx context.Context, r io.Reader, size int64, opts ...storage.Option) (*storage.Object, error) {
	s.mu.Lock()
	s.puts++
	n := s.puts
	s.mu.Unlock()
	if n == s.failOn {
		return nil, storage.ErrUploadFailed
	}
	return s.Storage.Put(ctx, r, size, opts...)
}

type enqueued struct {
	name    string
	payload any
}

type fakeEnqueuer struct {
	mu   sync.Mutex
	jobs []enqueued
	err  error
}

func (e *fakeEnqueuer) Enqueue(_ context.Context, name string, payload any, _ ...job.EnqueueOption) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.jobs = append(e.jobs, enqueued{name: name, payload: payload})
	return e.err
}

func (e *fakeEnqueuer) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.jobs))
	for _, j := range e.jobs {
		out = append(out, j.name)
	}
	return out
}

func newCatalog(t *testing.T, products catalog.Products) *catalog.Catalog {
	t.Helper()
	store := cache.NewMemory[memo.Entry[[]catalog.Product]]()
	t.Cleanup(func() { _ = store.Close() })
	return catalog.New(products, memo.New(store))
}

func newLocal(t *testing.T) (*storage.Local, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewLocal(storage.Config{LocalDir: dir, PublicURL: "/uploads"})
	require.NoError(t, err)
	return s, dir
}

func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	fhs := req.MultipartForm.File[field]
	require.Len(t, fhs, 1)
	return fhs[0]
}

func newProduct(t *testing.T) catalog.NewProduct {
	t.Helper()
	return catalog.NewProduct{
		Name:         "Field Guide",
		PriceInCents: 1999,
		Description:  "A **handy** guide.",
		File:         fileHeader(t, "file", "guide.txt", []byte("chapter one")),
		Image:        fileHeader(t, "image", "cover.png", pngBytes),
	}
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestCatalog_Memoization(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lists are computed once until invalidated", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		products.add("Alpha", true)
		c := newCatalog(t, products)

		for range 3 {
			_, err := c.PopularProducts(ctx)
			require.NoError(t, err)
			_, err = c.NewestProducts(ctx)
			require.NoError(t, err)
			_, err = c.AllProducts(ctx)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, products.count("MostPopular"))
		assert.Equal(t, 1, products.count("Newest"))
		assert.Equal(t, 1, products.count("ListAvailable"))

		require.NoError(t, c.Invalidate(ctx))
		_, err := c.NewestProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, products.count("Newest"))
	})

	t.Run("warm recomputes every list", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		c := newCatalog(t, products)

		_, err := c.PopularProducts(ctx)
		require.NoError(t, err)

		products.add("Beta", true)
		require.NoError(t, c.Warm(ctx))
		assert.Equal(t, 2, products.count("MostPopular"))
		assert.Equal(t, 1, products.count("Newest"))
		assert.Equal(t, 1, products.count("ListAvailable"))

		popular, err := c.PopularProducts(ctx)
		require.NoError(t, err)
		require.Len(t, popular, 1)
		assert.Equal(t, "Beta", popular[0].Name)
		assert.Equal(t, 2, products.count("MostPopular"))
	})

	t.Run("refresh popular leaves other lists alone", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		c := newCatalog(t, products)

		_, err := c.NewestProducts(ctx)
		require.NoError(t, err)
		require.NoError(t, c.RefreshPopular(ctx))
		_, err = c.NewestProducts(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, products.count("MostPopular"))
		assert.Equal(t, 1, products.count("Newest"))
	})

	t.Run("admin listing is not memoized", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		products.add("Hidden", false)
		c := newCatalog(t, products)

		all, err := c.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		_, err = c.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, products.count("ListAll"))

		available, err := c.AllProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, available)
	})
}

func TestPipeline_AddProduct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("stores assets, creates a draft and schedules warming", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		c := newCatalog(t, products)
		store, dir := newLocal(t)
		jobs := &fakeEnqueuer{}
		p := catalog.NewPipeline(products, store, c, catalog.WithEnqueuer(jobs))

		_, err := c.AllProducts(ctx)
		require.NoError(t, err)

		product, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)

		assert.Equal(t, "Field Guide", product.Name)
		assert.EqualValues(t, 1999, product.PriceInCents)
		assert.False(t, product.IsAvailableForPurchase)
		assert.Contains(t, product.FilePath, catalog.FilesPrefix+"/")
		assert.Contains(t, product.ImagePath, catalog.ImagesPrefix+"/")
		assert.ElementsMatch(t, []string{product.FilePath, product.ImagePath}, storedFiles(t, dir))
		assert.Equal(t, []string{catalog.WarmTask}, jobs.names())

		_, err = c.AllProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, products.count("ListAvailable"), "lists are invalidated after a new product")
	})

	t.Run("image upload failure removes the stored file", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		local, dir := newLocal(t)
		store := &failingStorage{Storage: local, failOn: 2}
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		_, err := p.AddProduct(ctx, newProduct(t))
		require.ErrorIs(t, err, catalog.ErrUpload)
		require.ErrorIs(t, err, storage.ErrUploadFailed)

		assert.Empty(t, storedFiles(t, dir))
		assert.Empty(t, products.list("ListAll", false))
	})

	t.Run("database failure removes both uploads", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		products.createErr = errors.New("connection reset")
		store, dir := newLocal(t)
		jobs := &fakeEnqueuer{}
		p := catalog.NewPipeline(products, store, newCatalog(t, products), catalog.WithEnqueuer(jobs))

		_, err := p.AddProduct(ctx, newProduct(t))
		require.EqualError(t, err, "connection reset")

		assert.Empty(t, storedFiles(t, dir))
		assert.Empty(t, jobs.names())
	})

	t.Run("missing uploads are rejected", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, _ := newLocal(t)
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		_, err := p.AddProduct(ctx, catalog.NewProduct{Name: "x", PriceInCents: 1})
		require.ErrorIs(t, err, catalog.ErrInvalidInput)
	})

	t.Run("enqueue failure does not fail the mutation", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, _ := newLocal(t)
		jobs := &fakeEnqueuer{err: job.ErrEnqueue}
		p := catalog.NewPipeline(products, store, newCatalog(t, products), catalog.WithEnqueuer(jobs))

		_, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)
	})
}

func TestPipeline_UpdateProduct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	edit := func(name string) catalog.ProductUpdate {
		return catalog.ProductUpdate{Name: name, PriceInCents: 2500, Description: "Revised."}
	}

	t.Run("text only edit keeps the assets", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		c := newCatalog(t, products)
		store, dir := newLocal(t)
		jobs := &fakeEnqueuer{}
		p := catalog.NewPipeline(products, store, c, catalog.WithEnqueuer(jobs))

		original, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)
		_, err = c.AllProducts(ctx)
		require.NoError(t, err)

		updated, err := p.UpdateProduct(ctx, original.ID, edit("Field Guide, 2nd ed."))
		require.NoError(t, err)

		assert.Equal(t, "Field Guide, 2nd ed.", updated.Name)
		assert.EqualValues(t, 2500, updated.PriceInCents)
		assert.Equal(t, original.FilePath, updated.FilePath)
		assert.Equal(t, original.ImagePath, updated.ImagePath)
		assert.ElementsMatch(t, []string{original.FilePath, original.ImagePath}, storedFiles(t, dir))
		assert.Equal(t, []string{catalog.WarmTask, catalog.WarmTask}, jobs.names())

		_, err = c.AllProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, products.count("ListAvailable"), "lists are invalidated after an edit")
	})

	t.Run("replaced image is removed after the update", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, dir := newLocal(t)
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		original, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)

		in := edit("Field Guide")
		in.Image = fileHeader(t, "image", "cover-v2.png", pngBytes)
		updated, err := p.UpdateProduct(ctx, original.ID, in)
		require.NoError(t, err)

		assert.Equal(t, original.FilePath, updated.FilePath)
		assert.NotEqual(t, original.ImagePath, updated.ImagePath)
		assert.Contains(t, updated.ImagePath, catalog.ImagesPrefix+"/")
		assert.ElementsMatch(t, []string{updated.FilePath, updated.ImagePath}, storedFiles(t, dir))
	})

	t.Run("database failure keeps the old assets and drops the new ones", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, dir := newLocal(t)
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		original, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)
		products.mu.Lock()
		products.updateErr = errors.New("connection reset")
		products.mu.Unlock()

		in := edit("Field Guide")
		in.File = fileHeader(t, "file", "guide-v2.txt", []byte("chapter two"))
		in.Image = fileHeader(t, "image", "cover-v2.png", pngBytes)
		_, err = p.UpdateProduct(ctx, original.ID, in)
		require.EqualError(t, err, "connection reset")

		assert.ElementsMatch(t, []string{original.FilePath, original.ImagePath}, storedFiles(t, dir))
	})

	t.Run("image upload failure removes the new file", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		local, dir := newLocal(t)
		store := &failingStorage{Storage: local, failOn: 4}
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		original, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)

		in := edit("Field Guide")
		in.File = fileHeader(t, "file", "guide-v2.txt", []byte("chapter two"))
		in.Image = fileHeader(t, "image", "cover-v2.png", pngBytes)
		_, err = p.UpdateProduct(ctx, original.ID, in)
		require.ErrorIs(t, err, catalog.ErrUpload)

		assert.ElementsMatch(t, []string{original.FilePath, original.ImagePath}, storedFiles(t, dir))
		kept, err := products.Get(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "Field Guide", kept.Name)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, dir := newLocal(t)
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		in := edit("Ghost")
		in.Image = fileHeader(t, "image", "cover.png", pngBytes)
		_, err := p.UpdateProduct(ctx, uuid.New(), in)
		require.ErrorIs(t, err, catalog.ErrNotFound)
		assert.Empty(t, storedFiles(t, dir))
	})
}

func TestPipeline_ToggleAvailability(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	products := newFakeProducts()
	c := newCatalog(t, products)
	store, _ := newLocal(t)
	p := catalog.NewPipeline(products, store, c)

	draft := products.add("Draft", false)

	available, err := c.AllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	toggled, err := p.ToggleAvailability(ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsAvailableForPurchase)

	available, err = c.AllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, draft.ID, available[0].ID)

	toggled, err = p.ToggleAvailability(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsAvailableForPurchase)

	_, err = p.ToggleAvailability(ctx, uuid.New())
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestPipeline_DeleteProduct(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes the row and its assets", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, dir := newLocal(t)
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		product, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)
		require.Len(t, storedFiles(t, dir), 2)

		require.NoError(t, p.DeleteProduct(ctx, product.ID))
		assert.Empty(t, storedFiles(t, dir))

		_, err = products.Get(ctx, product.ID)
		require.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("product with orders is kept", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, dir := newLocal(t)
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		product, err := p.AddProduct(ctx, newProduct(t))
		require.NoError(t, err)
		products.mu.Lock()
		products.orders[product.ID] = 2
		products.mu.Unlock()

		err = p.DeleteProduct(ctx, product.ID)
		require.ErrorIs(t, err, catalog.ErrHasOrders)
		assert.Len(t, storedFiles(t, dir), 2)
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()

		products := newFakeProducts()
		store, _ := newLocal(t)
		p := catalog.NewPipeline(products, store, newCatalog(t, products))

		require.ErrorIs(t, p.DeleteProduct(ctx, uuid.New()), catalog.ErrNotFound)
	})
}
