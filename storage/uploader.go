package storage

import (
	"context"
	"io"
	"time"
)

// SignedURLTTL is how long a minted download URL stays valid. The voice
// pipeline fetches the object back immediately, so the window is short.
const SignedURLTTL = 60 * time.Second

// ObjectStore is the audio blob storage boundary. Keys are user-scoped paths
// like "<user_id>/<name>.webm".
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) error

	Delete(ctx context.Context, key string) error

	// SignedURL mints a time-limited download URL for a stored object.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Fetch downloads an object's bytes through its signed URL. The pipeline
	// never reads in-process bytes; only the persisted object counts.
	Fetch(ctx context.Context, signedURL string) ([]byte, error)
}
