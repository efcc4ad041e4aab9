package testutil

import (
	"context"
	"fmt"

	"github.com/alumnet-lab/backend/pkg/storage"
)

// MockStorage keeps uploads in memory. UploadFunc overrides the default
// success.
type MockStorage struct {
	UploadFunc func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)

	Uploaded []*storage.UploadObject
	Deleted  []string
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	m.Uploaded = append(m.Uploaded, obj)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	key := fmt.Sprintf("%s/%d-%s", obj.Prefix, len(m.Uploaded), obj.FileName)
	return &storage.UploadResponse{URL: "https://storage.test/" + key, Key: key}, nil
}

func (m *MockStorage) Delete(ctx context.Context, url string) error {
	m.Deleted = append(m.Deleted, url)
	return nil
}
