package storage

import "context"

// Storage keeps user uploaded files (badge icons, resumes) behind public URLs.
type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)

	// Delete removes the object behind a URL returned by Upload. URLs which
	// do not belong to the storage are ignored.
	Delete(ctx context.Context, url string) error
}

type UploadObject struct {
	Prefix   string
	FileName string
	Mime     string
	Data     []byte
}

type UploadResponse struct {
	URL string
	Key string
}
