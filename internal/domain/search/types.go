package search

import (
	"context"
	"encoding/json"
	"fmt"
)

// ResponseMode selects how the upstream payload is shaped before it is
// returned to the caller.
type ResponseMode string

const (
	// ModeComplete returns the full upstream payload as indented JSON.
	ModeComplete ResponseMode = "complete"
	// ModeCompact strips top-level metadata keys before serializing.
	ModeCompact ResponseMode = "compact"
)

// DefaultEngine is merged into every outgoing parameter set unless the caller
// overrides it.
const DefaultEngine = "google_light"

// SerpClient issues one search request against the upstream provider with the
// fully assembled parameter map. Implementations must return the raw JSON
// body untouched so shaping can preserve field order.
type SerpClient interface {
	Search(ctx context.Context, params map[string]any) (json.RawMessage, error)
}

// UpstreamError carries a non-2xx response from the provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("SerpApi error (status %d): %s", e.StatusCode, e.Body)
}
