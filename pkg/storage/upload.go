package storage

import (
	"context"
	"fmt"
	"mime/multipart"
)

// PutFile stores a multipart upload. The content type comes from magic
// bytes and the client filename is kept in the generated key.
func PutFile(ctx context.Context, s Storage, fh *multipart.FileHeader, opts ...Option) (*Object, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("storage: open upload: %w", err)
	}
	defer f.Close()

	opts = append([]Option{WithFilename(fh.Filename), WithContentType(DetectMIME(fh))}, opts...)
	return s.Put(ctx, f, fh.Size, opts...)
}
