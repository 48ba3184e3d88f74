package loading

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

//go:embed facts.json
var embeddedFacts []byte

const maxFactsBytes = 1 << 20

type factsDocument struct {
	Facts []Fact `json:"facts"`
}

// LoadFacts reads a { "facts": [{ "text": ... }] } document from a file path
// or an http(s) URL. An empty source returns the built-in facts.
func LoadFacts(ctx context.Context, source string) ([]Fact, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case source == "":
		data = embeddedFacts
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, err = fetchFacts(ctx, source)
	default:
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("failed to read facts file %s: %w", source, err)
		}
	}
	if err != nil {
		return nil, err
	}

	return ParseFacts(data)
}

// ParseFacts decodes a facts document, dropping entries without text
func ParseFacts(data []byte) ([]Fact, error) {
	var doc factsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse facts: %w", err)
	}

	facts := make([]Fact, 0, len(doc.Facts))
	for _, f := range doc.Facts {
		if strings.TrimSpace(f.Text) != "" {
			facts = append(facts, f)
		}
	}
	return facts, nil
}

// DefaultFacts returns the facts compiled into the binary
func DefaultFacts() []Fact {
	facts, err := ParseFacts(embeddedFacts)
	if err != nil {
		return nil
	}
	return facts
}

func fetchFacts(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create facts request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facts: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch facts: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxFactsBytes))
}
