// Package storage wraps the Cloudinary API used for product images.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const productFolder = "products"

// Cloudinary uploads and destroys product images.
type Cloudinary struct {
	client *cloudinary.Cloudinary
}

// NewCloudinary creates an image store from a CLOUDINARY_URL-style URL.
func NewCloudinary(url string) (*Cloudinary, error) {
	client, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &Cloudinary{client: client}, nil
}

// Upload stores a base64 data-URI image and returns its public URL.
func (c *Cloudinary) Upload(ctx context.Context, image string) (string, error) {
	result, err := c.client.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder: productFolder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.SecureURL, nil
}

// Destroy removes the image behind a previously returned URL. Unknown URLs
// are ignored.
func (c *Cloudinary) Destroy(ctx context.Context, imageURL string) error {
	publicID := PublicIDFromURL(imageURL)
	if publicID == "" {
		return nil
	}

	_, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: productFolder + "/" + publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to destroy image: %w", err)
	}

	return nil
}

// PublicIDFromURL extracts the bare public id (last path segment without
// extension) from a delivery URL.
func PublicIDFromURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}

	parts := strings.Split(imageURL, "/")
	last := parts[len(parts)-1]

	if dot := strings.LastIndex(last, "."); dot >= 0 {
		last = last[:dot]
	}

	return last
}
