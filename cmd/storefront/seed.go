package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/storefront/catalog"
	"github.com/dmitrymomot/storefront/pkg/db"
	"github.com/dmitrymomot/storefront/pkg/memo"
	"github.com/dmitrymomot/storefront/pkg/storage"
)

var errInvalidSeed = errors.New("seed: invalid file")

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name         string `yaml:"name"`
	PriceInCents int64  `yaml:"price_in_cents"`
	Description  string `yaml:"description"`
	Available    bool   `yaml:"available"`
	// File and Image are paths relative to the seed file.
	File   string `yaml:"file"`
	Image  string `yaml:"image"`
	Orders int    `yaml:"orders"`
}

func parseSeed(r io.Reader) (seedFile, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return seedFile{}, errors.Join(errInvalidSeed, err)
	}

	var errs []error
	for i, p := range f.Products {
		switch {
		case strings.TrimSpace(p.Name) == "":
			errs = append(errs, fmt.Errorf("%w: product %d has no name", errInvalidSeed, i))
		case p.PriceInCents < 1:
			errs = append(errs, fmt.Errorf("%w: %s: price_in_cents must be at least 1", errInvalidSeed, p.Name))
		case p.PriceInCents > catalog.MaxPriceInCents:
			errs = append(errs, fmt.Errorf("%w: %s: price_in_cents must be at most %d",
				errInvalidSeed, p.Name, catalog.MaxPriceInCents))
		case p.File == "" || p.Image == "":
			errs = append(errs, fmt.Errorf("%w: %s: file and image are required", errInvalidSeed, p.Name))
		case p.Orders < 0:
			errs = append(errs, fmt.Errorf("%w: %s: orders must not be negative", errInvalidSeed, p.Name))
		}
	}
	return f, errors.Join(errs...)
}

func seedAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	path := cmd.String("file")
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	seed, err := parseSeed(fh)
	_ = fh.Close()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	for _, p := range seed.Products {
		if err := seedOne(ctx, pool, store, dir, p); err != nil {
			return fmt.Errorf("seed %s: %w", p.Name, err)
		}
		log.InfoContext(ctx, "product seeded", slog.String("name", p.Name), slog.Int("orders", p.Orders))
	}

	// Drop lists cached by running servers sharing the store.
	entries, client, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer entries.Close()
	if client != nil {
		defer client.Close()
	}
	return catalog.New(catalog.NewRepository(pool), memo.New(entries)).Invalidate(ctx)
}

// seedOne uploads both assets and writes the product with its orders in
// one transaction.
func seedOne(ctx context.Context, pool *pgxpool.Pool, store storage.Storage, dir string, p seedProduct) error {
	file, err := putLocalFile(ctx, store, filepath.Join(dir, p.File), catalog.FilesPrefix, storage.ACLPrivate)
	if err != nil {
		return err
	}
	image, err := putLocalFile(ctx, store, filepath.Join(dir, p.Image), catalog.ImagesPrefix, storage.ACLPublicRead)
	if err != nil {
		_ = store.Delete(ctx, file.Key)
		return err
	}

	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		repo := catalog.NewRepository(tx)
		product, err := repo.Create(ctx, catalog.CreateParams{
			Name:                   p.Name,
			PriceInCents:           p.PriceInCents,
			Description:            p.Description,
			FilePath:               file.Key,
			ImagePath:              image.Key,
			IsAvailableForPurchase: p.Available,
		})
		if err != nil {
			return err
		}
		for range p.Orders {
			if err := repo.CreateOrder(ctx, product.ID, p.PriceInCents); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = store.Delete(ctx, file.Key)
		_ = store.Delete(ctx, image.Key)
	}
	return err
}

func putLocalFile(ctx context.Context, store storage.Storage, path, prefix string, acl storage.ACL) (*storage.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return store.Put(ctx, f, st.Size(),
		storage.WithPrefix(prefix),
		storage.WithFilename(filepath.Base(path)),
		storage.WithACL(acl),
	)
}
