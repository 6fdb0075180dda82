package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/evcraddock/museum-visit/internal/app"
	"github.com/evcraddock/museum-visit/internal/booking"
	"github.com/evcraddock/museum-visit/internal/navigation"
)

// qrSize is the edge length of a booking QR code in pixels.
const qrSize = 256

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, HealthResponse{Status: "ok", Sessions: s.apps.Len()}, http.StatusOK)
}

// PageInfo describes one screen in GET /api/pages.
type PageInfo struct {
	Page          navigation.Page `json:"page"`
	Title         string          `json:"title"`
	Authenticated bool            `json:"authenticated"`
}

// PagesResponse is the body of GET /api/pages.
type PagesResponse struct {
	Pages []PageInfo        `json:"pages"`
	Edges []navigation.Edge `json:"edges"`
}

func (s *Server) handleAPIPages(w http.ResponseWriter, r *http.Request) {
	resp := PagesResponse{Edges: navigation.Edges()}
	for _, p := range navigation.Pages {
		resp.Pages = append(resp.Pages, PageInfo{Page: p, Title: p.Title(), Authenticated: p.Authenticated()})
	}
	apiJSON(w, resp, http.StatusOK)
}

// handleAPIState returns the caller's session without consuming its toasts.
func (s *Server) handleAPIState(w http.ResponseWriter, r *http.Request, a *app.App) {
	apiJSON(w, a.Snapshot(), http.StatusOK)
}

// handleQRCode serves the entry code of a pending booking record.
func (s *Server) handleQRCode(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := a.Record(id)
	if err != nil {
		apiError(w, "record not found", http.StatusNotFound)
		return
	}
	if !rec.Actionable() {
		apiError(w, "record is not pending", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(qrPayload(s.cfg.BaseURL, rec), qrcode.Medium, qrSize)
	if err != nil {
		apiError(w, fmt.Sprintf("encoding qr code: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		http.Error(w, "write failed", http.StatusInternalServerError)
	}
}

// qrPayload is the text encoded in a record's QR code.
func qrPayload(baseURL string, rec booking.Record) string {
	q := url.Values{"name": {rec.Name}, "date": {rec.Date}, "time": {rec.Time}}
	return fmt.Sprintf("%s/records/%d?%s", baseURL, rec.ID, q.Encode())
}
