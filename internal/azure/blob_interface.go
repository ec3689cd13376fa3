package azure

import "context"

// BlobStorage abstracts meal-image blob storage so services can be tested
// without touching Azure.
type BlobStorage interface {
	UploadImage(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	DownloadImage(ctx context.Context, blobName string) ([]byte, error)
}

// Ensure BlobStorageClient implements the interface
var _ BlobStorage = (*BlobStorageClient)(nil)
