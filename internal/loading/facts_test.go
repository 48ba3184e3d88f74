package loading

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFactsSources(t *testing.T) {
	doc := `{"facts":[{"text":"alpha"},{"text":"  "},{"text":"beta"}]}`

	dir := t.TempDir()
	path := filepath.Join(dir, "facts.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}))
	defer server.Close()

	tests := []struct {
		name   string
		source string
	}{
		{name: "file", source: path},
		{name: "url", source: server.URL + "/facts.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, err := LoadFacts(context.Background(), tt.source)
			if err != nil {
				t.Fatalf("LoadFacts() error = %v", err)
			}
			if len(facts) != 2 || facts[0].Text != "alpha" || facts[1].Text != "beta" {
				t.Errorf("facts = %+v", facts)
			}
		})
	}
}

func TestLoadFactsEmbedded(t *testing.T) {
	facts, err := LoadFacts(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadFacts() error = %v", err)
	}
	if len(facts) == 0 {
		t.Error("expected built-in facts")
	}
	if len(DefaultFacts()) != len(facts) {
		t.Error("DefaultFacts should match the embedded document")
	}
}

func TestLoadFactsErrors(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, source := range []string{server.URL, bad, filepath.Join(t.TempDir(), "missing.json")} {
		if _, err := LoadFacts(context.Background(), source); err == nil {
			t.Errorf("LoadFacts(%q) expected error", source)
		}
	}
}
