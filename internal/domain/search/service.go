package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SearchService executes one upstream search per call and shapes the result.
// Every failure is converted to a descriptive string; the protocol layer
// never sees a raised error from this path.
type SearchService struct {
	client SerpClient
}

// NewSearchService creates a new search service.
func NewSearchService(client SerpClient) *SearchService {
	return &SearchService{client: client}
}

// Execute runs a single search with the resolved per-request API key and the
// caller-supplied parameters, then applies the requested shaping mode. The
// returned string is either JSON text or an "Error: ..." message.
func (s *SearchService) Execute(ctx context.Context, apiKey string, params map[string]any, mode ResponseMode) string {
	if mode != ModeComplete && mode != ModeCompact {
		return "Error: Invalid mode. Must be 'complete' or 'compact'"
	}

	// Internal consistency guard; the auth middleware rejects keyless
	// requests before the tool is ever invoked.
	if strings.TrimSpace(apiKey) == "" {
		return "Error: Unable to access API key from request context"
	}

	merged := map[string]any{
		"api_key": apiKey,
		"engine":  DefaultEngine,
	}
	for k, v := range params {
		merged[k] = v
	}

	raw, err := s.client.Search(ctx, merged)
	if err != nil {
		return classifyError(err)
	}

	shaped, err := shapeResponse(raw, mode)
	if err != nil {
		log.Warn().Err(err).Str("mode", string(mode)).Msg("failed to shape upstream response")
		return "Error: " + err.Error()
	}
	return shaped
}

// classifyError maps upstream failures onto the user-facing error strings.
func classifyError(err error) string {
	status := 0
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		status = upstream.StatusCode
	}
	msg := err.Error()

	switch {
	case status == 429 || (status == 0 && strings.Contains(msg, "429")):
		return "Error: Rate limit exceeded. Please try again later."
	case status == 401 || (status == 0 && strings.Contains(msg, "401")):
		return "Error: Invalid SerpApi API key. Check your API key in the path or Authorization header."
	case status == 403 || (status == 0 && strings.Contains(msg, "403")):
		return "Error: SerpApi API key forbidden. Verify your subscription and key validity."
	default:
		return "Error: " + msg
	}
}

// isMetadataKey reports whether a top-level key is stripped in compact mode.
// The three fixed metadata keys are matched exactly; anything mentioning
// pagination is excluded by substring.
func isMetadataKey(key string) bool {
	switch key {
	case "search_metadata", "search_parameters", "search_information":
		return true
	}
	return strings.Contains(key, "pagination")
}

// shapeResponse serializes the raw upstream payload per the requested mode.
// The payload is kept as raw bytes throughout so field order and non-ASCII
// text survive untouched.
func shapeResponse(raw json.RawMessage, mode ResponseMode) (string, error) {
	if mode == ModeComplete {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	parsed := gjson.ParseBytes(raw)
	out := []byte(raw)
	if parsed.IsObject() {
		var delErr error
		parsed.ForEach(func(key, _ gjson.Result) bool {
			if !isMetadataKey(key.String()) {
				return true
			}
			out, delErr = sjson.DeleteBytes(out, escapePathKey(key.String()))
			return delErr == nil
		})
		if delErr != nil {
			return "", delErr
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, out); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// escapePathKey escapes sjson path syntax so arbitrary upstream keys are
// treated literally.
func escapePathKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '\\', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
