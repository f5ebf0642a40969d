package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dancerfit/admin-dashboard/internal/config"
	"dancerfit/admin-dashboard/internal/logger"
)

func TestPublicBucket(t *testing.T) {
	b := NewPublicBucket("")
	ctx := context.Background()

	got, err := b.VideoURL(ctx, "/exercises/videos/plank.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if want := DefaultBucketURL + "/exercises/videos/plank.mp4"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, _ := b.VideoURL(ctx, "https://cdn.example.com/a.mp4"); got != "https://cdn.example.com/a.mp4" {
		t.Fatalf("absolute url rewritten: %q", got)
	}
	if _, err := b.VideoURL(ctx, " "); !errors.Is(err, ErrNoMediaPath) {
		t.Fatalf("empty path: %v", err)
	}
	if got := b.ImageURL(ctx, "", DefaultImageFallback); got != DefaultImageFallback {
		t.Fatalf("fallback = %q", got)
	}
}

func TestObjectKey(t *testing.T) {
	base := "https://bucket.example.com"
	tests := []struct {
		path, key string
		ok        bool
	}{
		{"videos/a.mp4", "videos/a.mp4", true},
		{"/videos/a.mp4", "videos/a.mp4", true},
		{base + "/videos/a.mp4", "videos/a.mp4", true},
		{"https://other.example.com/a.mp4", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		key, ok := objectKey(tt.path, base)
		if key != tt.key || ok != tt.ok {
			t.Errorf("objectKey(%q) = %q,%v want %q,%v", tt.path, key, ok, tt.key, tt.ok)
		}
	}
}

func TestNewPicksResolver(t *testing.T) {
	r, err := New(config.S3Config{BucketURL: "https://b.example.com"}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*PublicBucket); !ok {
		t.Fatalf("got %T, want *PublicBucket", r)
	}
}

func TestS3PresignsKeys(t *testing.T) {
	r, err := NewS3Storage(config.S3Config{
		BucketName:      "media",
		Region:          "us-east-2",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "test",
		SecretAccessKey: "test-secret",
	}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	u, err := r.VideoURL(context.Background(), "videos/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "http://localhost:9000/media/videos/a.mp4?") || !strings.Contains(u, "X-Amz-Signature=") {
		t.Fatalf("presigned url = %q", u)
	}
	if got := r.ImageURL(context.Background(), "", "fallback"); got != "fallback" {
		t.Fatalf("image fallback = %q", got)
	}
}
