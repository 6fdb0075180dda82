package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/evcraddock/museum-visit/internal/app"
	"github.com/evcraddock/museum-visit/internal/booking"
	"github.com/evcraddock/museum-visit/internal/navigation"
)

func apiRequest(t *testing.T, srv *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestHealthCountsSessions(t *testing.T) {
	srv := testServer(t)
	apiRequest(t, srv, "GET", "/")
	apiRequest(t, srv, "GET", "/")

	var resp HealthResponse
	if err := json.NewDecoder(apiRequest(t, srv, "GET", "/health").Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Sessions != 2 {
		t.Errorf("sessions = %d, want 2", resp.Sessions)
	}
}

func TestAPIPages(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/pages")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp PagesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Pages) != len(navigation.Pages) {
		t.Errorf("pages = %d, want %d", len(resp.Pages), len(navigation.Pages))
	}
	if len(resp.Edges) == 0 {
		t.Error("expected edges")
	}
	for _, p := range resp.Pages {
		if p.Page == navigation.Welcome && p.Authenticated {
			t.Error("welcome should not require a session user")
		}
		if p.Page == navigation.Home && !p.Authenticated {
			t.Error("home should require a session user")
		}
	}
}

func TestAPIStateKeepsToasts(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.mustPost("/nav/login", nil)

	b.client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	if resp := b.do(http.MethodPost, "/login", url.Values{"username": {"alice"}}); resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}

	for i := 0; i < 2; i++ {
		st := b.state()
		if len(st.Toasts) != 1 || st.Toasts[0].Text != "请输入密码" {
			t.Fatalf("toasts = %+v", st.Toasts)
		}
	}
	if _, body := b.get("/"); !strings.Contains(body, ">请输入密码</div>") {
		t.Error("page should show the queued toast")
	}
	if st := b.state(); len(st.Toasts) != 0 {
		t.Errorf("toasts after render = %+v", st.Toasts)
	}
}

func TestAPIStateDefaults(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/state")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var v app.View
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Nav.Page != navigation.Welcome {
		t.Errorf("page = %s, want welcome", v.Nav.Page)
	}
	if v.SelectedDate != "2025-12-24" || v.SelectedCount != 1 || v.MaxVisitors != 3 {
		t.Errorf("booking = %q %d/%d", v.SelectedDate, v.SelectedCount, v.MaxVisitors)
	}
	if len(v.Records) != 5 || len(v.Visitors) != 3 {
		t.Errorf("records = %d, visitors = %d", len(v.Records), len(v.Visitors))
	}
}

func TestQRCodeNotFoundIsJSON(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/records/1/qr.png")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestQRPayload(t *testing.T) {
	rec := booking.Record{ID: 2, Name: "李四", Date: "2024年12月20日", Time: "上午 09:00-11:00"}
	got := qrPayload("http://museum.test", rec)

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse %q: %v", got, err)
	}
	if u.Host != "museum.test" || u.Path != "/records/2" {
		t.Errorf("url = %s", got)
	}
	q := u.Query()
	if q.Get("name") != rec.Name || q.Get("date") != rec.Date || q.Get("time") != rec.Time {
		t.Errorf("query = %v", q)
	}
}
