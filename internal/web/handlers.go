package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/evcraddock/museum-visit/internal/app"
	"github.com/evcraddock/museum-visit/internal/booking"
	"github.com/evcraddock/museum-visit/internal/content"
	"github.com/evcraddock/museum-visit/internal/navigation"
	"github.com/evcraddock/museum-visit/internal/profile"
	"github.com/evcraddock/museum-visit/internal/validate"
	"github.com/evcraddock/museum-visit/internal/visitor"
)

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.withApp(s.handleIndex))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/pages", s.handleAPIPages)
	s.mux.HandleFunc("GET /api/state", s.withApp(s.handleAPIState))
	s.mux.HandleFunc("GET /records/{id}/qr.png", s.withApp(s.handleQRCode))

	s.mux.HandleFunc("POST /nav/{page}", s.withApp(s.handleNavigate))
	s.mux.HandleFunc("POST /back", s.withApp(s.handleBack))
	s.mux.HandleFunc("POST /activity/{id}", s.withApp(s.handleOpenActivity))
	s.mux.HandleFunc("POST /announcement/{id}", s.withApp(s.handleOpenAnnouncement))

	s.mux.HandleFunc("POST /login", s.withApp(s.handleLogin))
	s.mux.HandleFunc("POST /register", s.withApp(s.handleRegister))
	s.mux.HandleFunc("POST /logout", s.withApp(s.handleLogout))

	s.mux.HandleFunc("POST /profile", s.withApp(s.handleSaveProfile))
	s.mux.HandleFunc("POST /profile/password", s.withApp(s.handleChangePassword))
	s.mux.HandleFunc("POST /profile/password/open", s.withApp(s.handleOpenPassword))
	s.mux.HandleFunc("POST /profile/password/close", s.withApp(s.handleClosePassword))

	s.mux.HandleFunc("POST /visitors", s.withApp(s.handleAddVisitor))
	s.mux.HandleFunc("POST /visitors/edit/{id}", s.withApp(s.handleEditVisitor))
	s.mux.HandleFunc("POST /visitors/edit/save", s.withApp(s.handleSaveVisitor))
	s.mux.HandleFunc("POST /visitors/edit/close", s.withApp(s.handleCloseVisitorEdit))
	s.mux.HandleFunc("POST /visitors/remove/{id}", s.withApp(s.handleRemoveVisitor))
	s.mux.HandleFunc("POST /visitors/remove/confirm", s.withApp(s.handleConfirmRemoveVisitor))
	s.mux.HandleFunc("POST /visitors/remove/cancel", s.withApp(s.handleCancelRemoveVisitor))

	s.mux.HandleFunc("POST /booking/date", s.withApp(s.handleSelectDate))
	s.mux.HandleFunc("POST /booking/slot", s.withApp(s.handleSelectSlot))
	s.mux.HandleFunc("POST /booking/visitors/{id}", s.withApp(s.handleToggleVisitor))
	s.mux.HandleFunc("POST /booking/submit", s.withApp(s.handleSubmitBooking))

	s.mux.HandleFunc("POST /records/qr/{id}", s.withApp(s.handleShowQRCode))
	s.mux.HandleFunc("POST /records/qr/close", s.withApp(s.handleCloseQRCode))
	s.mux.HandleFunc("POST /records/cancel/{id}", s.withApp(s.handleRequestCancel))
	s.mux.HandleFunc("POST /records/cancel/confirm", s.withApp(s.handleConfirmCancel))
	s.mux.HandleFunc("POST /records/cancel/dismiss", s.withApp(s.handleDismissCancel))
}

type pageData struct {
	app.View
	Title     string
	CSRFField template.HTML
	Venue     content.Venue
	Genders   []profile.Gender
	Avatars   []string

	Carousel      content.Carousel
	Activities    []content.Activity
	Announcements []content.Announcement

	Activity     content.Activity
	Announcement content.Announcement
	Body         template.HTML
}

// handleIndex renders whatever page the session is on.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, a *app.App) {
	v := a.View()
	data := pageData{
		View:      v,
		Title:     v.Nav.Page.Title(),
		CSRFField: csrf.TemplateField(r),
		Genders:   []profile.Gender{profile.Male, profile.Female},
		Avatars:   profile.Avatars,
	}

	var err error
	switch v.Nav.Page {
	case navigation.Home:
		data.Carousel = s.catalog.HomeCarousel()
		data.Venue = s.catalog.Venue()
	case navigation.Activity:
		data.Carousel = s.catalog.ActivityCarousel()
		data.Activities = s.catalog.Activities()
	case navigation.ActivityDetail:
		data.Activity, err = s.catalog.Activity(v.Nav.SelectedActivityID)
		if err == nil {
			data.Body, err = s.catalog.Render(data.Activity.Body)
		}
	case navigation.Announcement:
		data.Announcements = s.catalog.Announcements()
	case navigation.AnnouncementDetail:
		data.Announcement, err = s.catalog.Announcement(v.Nav.SelectedAnnouncementID)
		if err == nil {
			data.Body, err = s.catalog.Render(data.Announcement.Body)
		}
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading content: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, string(v.Nav.Page)+".html", data)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request, a *app.App) {
	page, ok := navigation.ParsePage(r.PathValue("page"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.done(w, r, a.Navigate(page))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request, a *app.App) {
	s.done(w, r, a.Back())
}

func (s *Server) handleOpenActivity(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.done(w, r, a.OpenActivity(id))
}

func (s *Server) handleOpenAnnouncement(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.done(w, r, a.OpenAnnouncement(id))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	s.done(w, r, a.Login(validate.LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	s.done(w, r, a.Register(validate.RegisterForm{
		Username:        r.FormValue("username"),
		Gender:          r.FormValue("gender"),
		Avatar:          r.FormValue("avatar"),
		Phone:           r.FormValue("phone"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, a *app.App) {
	a.Logout()
	s.done(w, r, nil)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	s.done(w, r, a.SaveProfile(app.ProfileInput{
		Username: r.FormValue("username"),
		Gender:   profile.Gender(r.FormValue("gender")),
		Phone:    r.FormValue("phone"),
		Avatar:   r.FormValue("avatar"),
	}))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	s.done(w, r, a.ChangePassword(validate.PasswordForm{
		Old:     r.FormValue("old_password"),
		New:     r.FormValue("new_password"),
		Confirm: r.FormValue("confirm_password"),
	}))
}

func (s *Server) handleOpenPassword(w http.ResponseWriter, r *http.Request, a *app.App) {
	s.done(w, r, a.OpenPasswordModal())
}

func (s *Server) handleClosePassword(w http.ResponseWriter, r *http.Request, a *app.App) {
	a.ClosePasswordModal()
	s.done(w, r, nil)
}

func (s *Server) handleAddVisitor(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	_, err := a.AddVisitor(visitorForm(r))
	s.done(w, r, err)
}

func (s *Server) handleEditVisitor(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.done(w, r, a.EditVisitor(id))
}

func (s *Server) handleSaveVisitor(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	_, err := a.SaveVisitor(visitorForm(r))
	s.done(w, r, err)
}

func (s *Server) handleCloseVisitorEdit(w http.ResponseWriter, r *http.Request, a *app.App) {
	a.CloseVisitorEdit()
	s.done(w, r, nil)
}

func (s *Server) handleRemoveVisitor(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.done(w, r, a.RequestVisitorRemoval(id))
}

func (s *Server) handleConfirmRemoveVisitor(w http.ResponseWriter, r *http.Request, a *app.App) {
	s.done(w, r, a.ConfirmVisitorRemoval())
}

func (s *Server) handleCancelRemoveVisitor(w http.ResponseWriter, r *http.Request, a *app.App) {
	a.CancelVisitorRemoval()
	s.done(w, r, nil)
}

func (s *Server) handleSelectDate(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	s.done(w, r, a.SelectDate(r.FormValue("date")))
}

func (s *Server) handleSelectSlot(w http.ResponseWriter, r *http.Request, a *app.App) {
	if !parseForm(w, r) {
		return
	}
	s.done(w, r, a.SelectSlot(r.FormValue("slot")))
}

func (s *Server) handleToggleVisitor(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.done(w, r, a.ToggleBookingVisitor(id))
}

func (s *Server) handleSubmitBooking(w http.ResponseWriter, r *http.Request, a *app.App) {
	_, err := a.SubmitBooking()
	s.done(w, r, err)
}

func (s *Server) handleShowQRCode(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.done(w, r, a.ShowQRCode(id))
}

func (s *Server) handleCloseQRCode(w http.ResponseWriter, r *http.Request, a *app.App) {
	a.CloseQRCode()
	s.done(w, r, nil)
}

func (s *Server) handleRequestCancel(w http.ResponseWriter, r *http.Request, a *app.App) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.done(w, r, a.RequestCancel(id))
}

func (s *Server) handleConfirmCancel(w http.ResponseWriter, r *http.Request, a *app.App) {
	s.done(w, r, a.ConfirmCancel())
}

func (s *Server) handleDismissCancel(w http.ResponseWriter, r *http.Request, a *app.App) {
	a.DismissCancel()
	s.done(w, r, nil)
}

// done finishes a POST. Outcomes the user can see as a toast or as a changed
// page redirect back to the index; requests the current page cannot serve
// are rejected.
func (s *Server) done(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if _, ok := validate.As(err); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch {
	case errors.Is(err, visitor.ErrSelectionLimit), errors.Is(err, visitor.ErrBlacklisted):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, content.ErrNotFound),
		errors.Is(err, visitor.ErrNotFound),
		errors.Is(err, booking.ErrRecordNotFound):
		http.NotFound(w, r)
	case errors.Is(err, booking.ErrUnknownOption):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, navigation.ErrInvalidTransition),
		errors.Is(err, app.ErrWrongPage),
		errors.Is(err, booking.ErrUnavailable),
		errors.Is(err, booking.ErrNotPending),
		errors.Is(err, booking.ErrNoPendingCancel),
		errors.Is(err, visitor.ErrNoPendingRemoval):
		slog.Debug("rejected action", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Error: %v", err), http.StatusInternalServerError)
	}
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID reads the {id} path value, answering 404 when it is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func visitorForm(r *http.Request) validate.VisitorForm {
	return validate.VisitorForm{
		Name:   strings.TrimSpace(r.FormValue("name")),
		Phone:  strings.TrimSpace(r.FormValue("phone")),
		IDCard: strings.TrimSpace(r.FormValue("id_card")),
	}
}
