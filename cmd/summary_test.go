package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func TestSummaryCommand(t *testing.T) {
	generate := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("generation API must not be called for an empty store")
	}))
	defer generate.Close()

	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(t.TempDir(), "todos.db"))
	t.Setenv("COHERE_API_KEY", "test-key")
	t.Setenv("COHERE_BASE_URL", generate.URL)
	t.Setenv("SLACK_WEBHOOK_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"summary", "--env-file", filepath.Join(t.TempDir(), "missing.env")})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("summary command failed: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "No todos found" {
		t.Errorf("expected empty-store summary, got %q", got)
	}
}
