package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"srvburn/internal/model"
)

// ErrNotList indicates the supplied document is not a JSON array of server
// records. Callers render a zeroed report instead of aborting; a blank
// summary beats a crash in a display-facing computation.
var ErrNotList = errors.New("server data is not a list")

// LoadResult holds normalized servers plus ingestion diagnostics.
type LoadResult struct {
	Servers   []model.Server
	Malformed int // array elements that were not server-shaped objects
}

// Decode parses a JSON document into normalized server records.
// The top level must be an array; anything else is rejected with ErrNotList,
// never silently coerced. Individual malformed elements are counted and
// skipped so one bad row cannot take down the whole list.
func Decode(data []byte) (*LoadResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotList
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotList, err)
	}

	result := &LoadResult{Servers: make([]model.Server, 0, len(elements))}
	for _, el := range elements {
		var raw model.RawServer
		if err := json.Unmarshal(el, &raw); err != nil {
			result.Malformed++
			continue
		}
		result.Servers = append(result.Servers, Normalize(raw))
	}
	return result, nil
}

// Normalize converts a wire record into the internal representation,
// parsing the expiry exactly once.
func Normalize(raw model.RawServer) model.Server {
	s := model.Server{
		ID:          raw.ID,
		Name:        raw.Name,
		MonthlyCost: raw.MonthlyCost,
		RawExpiry:   rawExpiryText(raw.Expire),
	}
	s.Expiry, s.ExpiryValid = ParseExpiry(raw.Expire)
	return s
}

// LoadFile reads and decodes a server list from a JSON file on disk.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading server list: %w", err)
	}
	return Decode(data)
}

// rawExpiryText renders the original expire value for warning messages.
func rawExpiryText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	return strings.Trim(s, `"`)
}
