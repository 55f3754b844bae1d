// Package media wraps the external image host behind a small upload/destroy
// interface so the rest of the application treats it as a black box.
package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Asset is a reference to an uploaded image: its public URL and the
// identifier needed to destroy it later.
type Asset struct {
	URL      string
	PublicID string
}

// Store is the interface repositories of images are accessed through.
// Source may be a data URI, a remote URL or a local file path; preset is the
// collection-specific upload preset.
type Store interface {
	Upload(source, preset string) (*Asset, error)
	Destroy(publicID string) error
}

// CloudinaryStore is a Cloudinary-backed Store.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore creates a CloudinaryStore from a cloudinary:// URL.
func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload sends the image to Cloudinary under the given preset.
func (s *CloudinaryStore) Upload(source, preset string) (*Asset, error) {
	resp, err := s.cld.Upload.Upload(context.Background(), source, uploader.UploadParams{
		UploadPreset: preset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload image: %s", resp.Error.Message)
	}
	return &Asset{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Destroy removes a previously uploaded image.
func (s *CloudinaryStore) Destroy(publicID string) error {
	_, err := s.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to destroy image %s: %w", publicID, err)
	}
	return nil
}
