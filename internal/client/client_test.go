package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evcraddock/museum-visit/internal/config"
	"github.com/evcraddock/museum-visit/internal/db"
	"github.com/evcraddock/museum-visit/internal/navigation"
	"github.com/evcraddock/museum-visit/internal/web"
)

// newBookingServer starts a real booking server with instant page changes.
func newBookingServer(t *testing.T, modify func(*config.Config)) *httptest.Server {
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

	cfg := config.Default()
	cfg.Delays = config.Delays{}
	if modify != nil {
		modify(&cfg)
	}
	srv, err := web.NewServer(d, cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(baseURL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(web.HealthResponse{Status: "ok", Sessions: 4}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	h, err := newClient(t, srv.URL+"/").Health()
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if h.Status != "ok" || h.Sessions != 4 {
		t.Errorf("health = %+v", h)
	}
}

func TestErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte(`{"error":"record not found"}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Health()
	if err == nil || err.Error() != "record not found" {
		t.Errorf("err = %v, want record not found", err)
	}
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).Pages()
	if err == nil || !strings.Contains(err.Error(), "Internal Server Error") {
		t.Errorf("err = %v", err)
	}
}

func TestPages(t *testing.T) {
	ts := newBookingServer(t, nil)

	resp, err := newClient(t, ts.URL).Pages()
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if len(resp.Pages) != len(navigation.Pages) {
		t.Errorf("pages = %d, want %d", len(resp.Pages), len(navigation.Pages))
	}
}

func TestLoginAndBook(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"without csrf", nil},
		{"with csrf", func(c *config.Config) { c.CSRFKey = strings.Repeat("0a", 32) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, newBookingServer(t, tt.modify).URL)

			if err := c.Navigate(navigation.Login); err != nil {
				t.Fatalf("navigate: %v", err)
			}
			if err := c.Login("alice", "secret"); err != nil {
				t.Fatalf("login: %v", err)
			}
			if err := c.Navigate(navigation.Booking); err != nil {
				t.Fatalf("navigate: %v", err)
			}
			if err := c.SubmitBooking(); err != nil {
				t.Fatalf("submit: %v", err)
			}

			st, err := c.State()
			if err != nil {
				t.Fatalf("state: %v", err)
			}
			if st.Nav.Page != navigation.BookingRecord || st.Nav.Username != "alice" {
				t.Errorf("nav = %+v", st.Nav)
			}
			if len(st.Records) != 6 {
				t.Errorf("records = %d, want 6", len(st.Records))
			}

			if err := c.Back(); err != nil {
				t.Fatalf("back: %v", err)
			}
		})
	}
}

func TestInvalidTransition(t *testing.T) {
	c := newClient(t, newBookingServer(t, nil).URL)

	err := c.Navigate(navigation.Home)
	if err == nil || !strings.Contains(err.Error(), "Conflict") {
		t.Errorf("err = %v, want conflict", err)
	}
}
