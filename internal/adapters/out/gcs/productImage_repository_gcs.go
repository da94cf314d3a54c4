// internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// ProductImageRepositoryGCS stores product images in Cloud Storage.
//
// Layout (single bucket):
// - bucket: <project>-product-images
// - objectPath: products/{yyyyMM}/{uuid}{ext}
//
// Public access:
//   - With IAM "allUsers: Storage Object Viewer" (uniform access) on the
//     bucket, uploads are publicly readable without per-object ACLs.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload writes image bytes and returns the public URL.
func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("productImage_repository_gcs: storage client is nil")
	}
	bucket := strings.TrimSpace(r.Bucket)
	if bucket == "" {
		return "", errors.New("productImage_repository_gcs: bucket is empty")
	}
	if len(data) == 0 {
		return "", errors.New("productImage_repository_gcs: empty payload")
	}

	ct := strings.TrimSpace(contentType)
	ext, ok := allowedImageTypes[ct]
	if !ok {
		return "", fmt.Errorf("productImage_repository_gcs: unsupported content type %q", ct)
	}
	// prefer the original extension when it agrees with the content type
	if e := strings.ToLower(path.Ext(fileName)); e != "" {
		ext = e
	}

	objectPath := fmt.Sprintf("products/%s/%s%s", time.Now().UTC().Format("200601"), uuid.NewString(), ext)

	w := r.Client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = ct
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return r.publicURL(bucket, objectPath), nil
}

// Delete removes one object; a missing object is not an error.
func (r *ProductImageRepositoryGCS) Delete(ctx context.Context, objectPath string) error {
	if r == nil || r.Client == nil {
		return errors.New("productImage_repository_gcs: storage client is nil")
	}
	obj := strings.TrimSpace(objectPath)
	if obj == "" {
		return nil
	}
	if err := r.Client.Bucket(r.Bucket).Object(obj).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
		return err
	}
	return nil
}

// publicURL works when the bucket is publicly readable (uniform access).
func (r *ProductImageRepositoryGCS) publicURL(bucket, objectPath string) string {
	base := strings.TrimSpace(r.PublicBaseURL)
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	// Encode path but keep "/" separators.
	parts := strings.Split(objectPath, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, strings.Join(parts, "/"))
}
