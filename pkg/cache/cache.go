// Package cache provides caching for rendered layout artifacts.
//
// Rendering a page preview or a whole-layout image is the expensive part
// of serving a document viewer; the geometry itself is cheap. The cache
// stores rendered bytes keyed by everything that influences the output:
// the document identity, the page index, and the layout parameters.
//
// # Backends
//
//   - MemoryCache: in-process, for a single server
//   - FileCache: on-disk, for CLI runs that outlive the process
//   - RedisCache: shared, for multi-instance deployments
//   - NullCache: disabled caching
//
// All backends implement the Cache interface and are safe for concurrent
// use.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts as opaque bytes.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PageKeyOpts captures the parameters that influence a rendered page.
type PageKeyOpts struct {
	Width    int    // device pixels
	Height   int    // device pixels
	Rotation int    // quarter turns
	Format   string // "svg", "png", "json"
}

// LayoutKeyOpts captures the parameters that influence a rendered
// layout overview.
type LayoutKeyOpts struct {
	Margin      int
	Spacing     int
	Zoom        float64
	Rotation    int
	Orientation string // "vertical" or "horizontal"
	Format      string
}

// Keyer generates cache keys for the different artifact types.
type Keyer interface {
	// PageKey generates a key for a single rendered page.
	PageKey(docID string, index int, opts PageKeyOpts) string

	// LayoutKey generates a key for a rendered layout overview.
	// docHash identifies the page set, typically Hash over the manifest.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key generator. Keys are
// "<type>:<sha256 of the identifying parts>" so any backend can store
// them without escaping.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PageKey generates a key for a single rendered page.
func (k *DefaultKeyer) PageKey(docID string, index int, opts PageKeyOpts) string {
	return hashKey("page", docID, index, opts)
}

// LayoutKey generates a key for a rendered layout overview.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}
