// Package storage persists uploaded product files and images.
//
// Two backends implement [Storage]: [S3] for any S3-compatible bucket and
// [Local] for a directory on disk. [New] picks one from [Config].
//
// Uploads go through [ValidateFile] with rules such as [NotEmpty],
// [MaxSize] and [ImageOnly], then [PutFile]:
//
//	if verr := storage.ValidateFile("image", fh, storage.NotEmpty(), storage.ImageOnly()); verr != nil {
//		// show verr.Message next to the field
//	}
//	obj, err := storage.PutFile(ctx, store, fh,
//		storage.WithPrefix("products/images"),
//		storage.WithACL(storage.ACLPublicRead),
//	)
//
// Content types are always sniffed from the first 512 bytes.
package storage
