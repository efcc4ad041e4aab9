package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/alumnet-lab/backend/config"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *s3Storage {
	s, err := NewS3Storage(config.S3Configs{
		Region:         "auto",
		PublicEndpoint: "https://cdn.example.com/",
		Bucket:         "alumnet",
	})
	require.NoError(t, err)
	return s
}

func TestObjectKey(t *testing.T) {
	s := newTestStorage(t)

	key := s.objectKey(&UploadObject{Prefix: "badges", FileName: "my icon.png"})
	require.True(t, strings.HasPrefix(key, "badges/"))
	require.True(t, strings.HasSuffix(key, "-my_icon.png"))

	// Directories in the client file name are dropped.
	key = s.objectKey(&UploadObject{Prefix: "resumes", FileName: "../../cv.pdf"})
	require.True(t, strings.HasPrefix(key, "resumes/"))
	require.NotContains(t, key, "..")
	require.NotEqual(t, key, s.objectKey(&UploadObject{Prefix: "resumes", FileName: "../../cv.pdf"}))
}

func TestKeyOf(t *testing.T) {
	s := newTestStorage(t)

	url := s.publicURL("badges/1-icon.png")
	require.Equal(t, "https://cdn.example.com/alumnet/badges/1-icon.png", url)

	key, ok := s.keyOf(url)
	require.True(t, ok)
	require.Equal(t, "badges/1-icon.png", key)

	_, ok = s.keyOf("https://elsewhere.example.com/icon.png")
	require.False(t, ok)

	_, ok = s.keyOf(s.publicURL(""))
	require.False(t, ok)

	// Foreign URLs are never sent to S3.
	require.NoError(t, s.Delete(context.Background(), "https://elsewhere.example.com/icon.png"))
}
