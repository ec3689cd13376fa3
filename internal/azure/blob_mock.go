package azure

import (
	"context"
	"fmt"
	"sync"
)

// MockBlobStorage is an in-memory BlobStorage used in tests
type MockBlobStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailUploads makes every upload return an error
	FailUploads bool
}

// NewMockBlobStorage creates an empty mock store
func NewMockBlobStorage() *MockBlobStorage {
	return &MockBlobStorage{
		blobs: make(map[string][]byte),
	}
}

// UploadImage stores the image in memory under meals/<filename>
func (m *MockBlobStorage) UploadImage(_ context.Context, filename string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUploads {
		return "", fmt.Errorf("mock upload failure")
	}

	blobName := fmt.Sprintf("meals/%s", filename)
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[blobName] = stored

	return blobName, nil
}

// DownloadImage returns a previously uploaded image
func (m *MockBlobStorage) DownloadImage(_ context.Context, blobName string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blobs[blobName]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", blobName)
	}

	return data, nil
}

// Count returns how many blobs are stored
func (m *MockBlobStorage) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.blobs)
}

var _ BlobStorage = (*MockBlobStorage)(nil)
