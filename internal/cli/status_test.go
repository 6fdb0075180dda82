package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evcraddock/museum-visit/internal/config"
	"github.com/evcraddock/museum-visit/internal/db"
	"github.com/evcraddock/museum-visit/internal/web"
)

// newBookingServer starts a real server with an in-memory session store.
func newBookingServer(t *testing.T) *httptest.Server {
	t.Helper()
	d, err := db.Open(db.Memory)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	srv, err := web.NewServer(d, config.Default())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func TestStatusWithServer(t *testing.T) {
	ts := newBookingServer(t)

	out, err := executeCommand("status", "--server", ts.URL)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{ts.URL, "✓ ok", "Sessions: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusJSON(t *testing.T) {
	ts := newBookingServer(t)

	out, err := executeCommand("status", "--server", ts.URL, "--format", "json")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var h web.HealthResponse
	if err := json.Unmarshal([]byte(out), &h); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if h.Status != "ok" {
		t.Errorf("status = %q", h.Status)
	}
}

func TestStatusUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	out, err := executeCommand("status", "--server", url)
	if err != nil {
		t.Fatalf("status should report, not fail: %v", err)
	}
	if !strings.Contains(out, "cannot reach server") {
		t.Errorf("output = %q", out)
	}

	if _, err := executeCommand("status", "--server", url, "--format", "json"); err == nil {
		t.Error("expected error in json mode")
	}
}

func TestPages(t *testing.T) {
	ts := newBookingServer(t)

	out, err := executeCommand("pages", "--server", ts.URL)
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	for _, want := range []string{"PAGE", "welcome", "bookingRecord", "Total: 13 pages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPagesJSON(t *testing.T) {
	ts := newBookingServer(t)

	out, err := executeCommand("pages", "--server", ts.URL, "--format", "json")
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	var resp web.PagesResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Pages) != 13 {
		t.Errorf("pages = %d, want 13", len(resp.Pages))
	}
}
