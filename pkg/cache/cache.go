// Package cache provides pluggable result caching for the drawing pipeline.
//
// Shaft geometry is cheap to compute but rendered artifacts (PDF pages,
// rasterized PNGs) are not, and the HTTP API renders the same documents
// repeatedly. Cache keys are derived from a content hash of the shaft
// document plus the options that affect each stage, so a cache never
// returns output for a different shaft or different render settings.
//
// Backends:
//   - FileCache: per-user on-disk cache for the CLI
//   - RedisCache: shared cache for server deployments
//   - MongoCache: shared cache with TTL indexes for server deployments
//   - NullCache: disabled caching
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Layouts are invalidated by their keys alone (the
// document hash changes when the shaft changes), so the TTLs exist only to
// bound storage, not for correctness.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with expiry.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Page             string
	Units            string
	Title            string
	Datums           bool
	Diameters        bool
	TierOrigin       *float64
	FallbackDiameter float64
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string
	PixelsPerMM float64
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey keys a computed page layout by document hash and layout
	// options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash and render
	// options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
