package metadata

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter extracts raw front-matter fields and the markup body from
// the provided source bytes. Malformed front matter is not fatal: the error is
// returned for the caller to log, together with an empty field map and the
// entire source as body, so one broken header never aborts a batch.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	raw := map[string]any{}

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &raw)
	if err != nil {
		return map[string]any{}, source, fmt.Errorf("parse frontmatter: %w", err)
	}

	if raw == nil {
		raw = map[string]any{}
	}
	return raw, body, nil
}
