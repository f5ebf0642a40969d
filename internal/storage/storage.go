package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

const (
	// DefaultBucketURL is the public base of the media bucket.
	DefaultBucketURL = "https://dancer-fitness-bucket.s3.us-east-2.amazonaws.com"
	// DefaultImageFallback is shown when an exercise or plan has no image.
	DefaultImageFallback = "https://placehold.co/400x200?text=No+Image"
)

var ErrNoMediaPath = errors.New("no media path")

// MediaURLResolver turns storage paths returned by the remote API into URLs
// a browser can load.
type MediaURLResolver interface {
	// VideoURL resolves a video path. An empty path yields ErrNoMediaPath.
	VideoURL(ctx context.Context, path string) (string, error)
	// ImageURL resolves an image path, or returns fallback when there is none
	// or it can't be resolved.
	ImageURL(ctx context.Context, path, fallback string) string
}

// PublicBucket joins paths onto a public bucket URL.
type PublicBucket struct {
	BaseURL string
}

func NewPublicBucket(baseURL string) *PublicBucket {
	if baseURL == "" {
		baseURL = DefaultBucketURL
	}
	return &PublicBucket{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (b *PublicBucket) VideoURL(_ context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrNoMediaPath
	}
	if isAbsoluteURL(path) {
		return path, nil
	}
	return b.BaseURL + "/" + strings.TrimLeft(path, "/"), nil
}

func (b *PublicBucket) ImageURL(ctx context.Context, path, fallback string) string {
	u, err := b.VideoURL(ctx, path)
	if err != nil {
		return fallback
	}
	return u
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// objectKey extracts the bucket key from a stored path, which may be a bare
// key or a URL under the bucket's public base.
func objectKey(path, bucketURL string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false
	}
	if !isAbsoluteURL(path) {
		return strings.TrimLeft(path, "/"), true
	}
	base := strings.TrimRight(bucketURL, "/")
	if base != "" && strings.HasPrefix(path, base+"/") {
		return strings.TrimPrefix(path, base+"/"), true
	}
	return "", false
}
