package web

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/museum-visit/internal/app"
	"github.com/evcraddock/museum-visit/internal/config"
	"github.com/evcraddock/museum-visit/internal/db"
	"github.com/evcraddock/museum-visit/internal/navigation"
)

func TestWelcomePage(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "探索千年文化") {
		t.Error("expected welcome page")
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestUnknownPath(t *testing.T) {
	srv := testServer(t)

	r := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestStaticAssets(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/static/style.css", "/static/app.js", "/static/museum.svg"} {
		r := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		wantPage navigation.Page
		wantText string
	}{
		{"missing username", url.Values{"password": {"x"}}, navigation.Login, ">请输入用户名</div>"},
		{"missing password", url.Values{"username": {"alice"}}, navigation.Login, ">请输入密码</div>"},
		{"success", url.Values{"username": {"alice"}, "password": {"x"}}, navigation.Home, "登录成功！"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t, testServer(t))
			b.mustPost("/nav/login", nil)

			code, body := b.post("/login", tt.form)
			if code != http.StatusOK {
				t.Fatalf("status = %d", code)
			}
			if !strings.Contains(body, tt.wantText) {
				t.Errorf("body missing %q", tt.wantText)
			}
			if p := b.state().Nav.Page; p != tt.wantPage {
				t.Errorf("page = %s, want %s", p, tt.wantPage)
			}
		})
	}
}

func TestHomeAfterLogin(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")

	_, body := b.get("/")
	for _, want := range []string{"故宫博物院", "你好，alice", "参观预约", "data-interval=\"3000\""} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestNavigationErrors(t *testing.T) {
	b := newBrowser(t, testServer(t))

	if code, _ := b.post("/nav/home", nil); code != http.StatusConflict {
		t.Errorf("welcome -> home: status = %d, want %d", code, http.StatusConflict)
	}
	if code, _ := b.post("/nav/nowhere", nil); code != http.StatusNotFound {
		t.Errorf("unknown page: status = %d, want %d", code, http.StatusNotFound)
	}
	if code, _ := b.post("/back", nil); code != http.StatusConflict {
		t.Errorf("back from welcome: status = %d, want %d", code, http.StatusConflict)
	}
	if code, _ := b.post("/login", url.Values{"username": {"a"}, "password": {"b"}}); code != http.StatusConflict {
		t.Errorf("login from welcome: status = %d, want %d", code, http.StatusConflict)
	}
}

func TestRegister(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.mustPost("/nav/register", nil)

	form := url.Values{
		"username": {"bob"}, "gender": {"male"}, "avatar": {"👨"},
		"phone": {"13800000000"}, "password": {"secret"}, "confirm_password": {"nope12"},
	}
	_, body := b.post("/register", form)
	if !strings.Contains(body, "两次密码输入不一致") {
		t.Error("expected mismatch toast")
	}

	form.Set("confirm_password", "secret")
	_, body = b.post("/register", form)
	if !strings.Contains(body, "注册成功！即将跳转到登录页面...") {
		t.Error("expected success toast")
	}
	if p := b.state().Nav.Page; p != navigation.Login {
		t.Errorf("page = %s, want login", p)
	}
}

func TestActivityDetail(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")
	b.mustPost("/nav/activity", nil)

	if code, _ := b.post("/activity/99", nil); code != http.StatusNotFound {
		t.Errorf("unknown activity: status = %d, want 404", code)
	}

	code, body := b.post("/activity/2", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, "<p>") {
		t.Error("expected rendered body")
	}
	nav := b.state().Nav
	if nav.Page != navigation.ActivityDetail || nav.SelectedActivityID != 2 {
		t.Errorf("nav = %+v", nav)
	}
}

func TestAnnouncementDetail(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")
	b.mustPost("/nav/announcement", nil)

	code, _ := b.post("/announcement/1", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if nav := b.state().Nav; nav.Page != navigation.AnnouncementDetail || nav.SelectedAnnouncementID != 1 {
		t.Errorf("nav = %+v", nav)
	}
	b.mustPost("/back", nil)
	if p := b.state().Nav.Page; p != navigation.Announcement {
		t.Errorf("page after back = %s", p)
	}
}

func TestBookingFlow(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")
	b.mustPost("/nav/booking", nil)

	if code, _ := b.post("/booking/date", url.Values{"date": {"2025-12-26"}}); code != http.StatusConflict {
		t.Errorf("full date: status = %d, want 409", code)
	}
	if code, _ := b.post("/booking/slot", url.Values{"slot": {"09:00"}}); code != http.StatusBadRequest {
		t.Errorf("unknown slot: status = %d, want 400", code)
	}
	b.mustPost("/booking/date", url.Values{"date": {"2025-12-25"}})
	b.mustPost("/booking/visitors/2", nil)

	_, body := b.post("/booking/submit", nil)
	if !strings.Contains(body, "预约成功！") {
		t.Error("expected success toast")
	}

	st := b.state()
	if st.Nav.Page != navigation.BookingRecord {
		t.Errorf("page = %s, want bookingRecord", st.Nav.Page)
	}
	if len(st.Records) != 7 || st.Records[0].Date != "2025年12月25日" {
		t.Errorf("records = %+v", st.Records)
	}
}

func TestBookingVisitorCap(t *testing.T) {
	srv := testServerWith(t, func(c *config.Config) { c.Policy.MaxVisitors = 1 })
	b := newBrowser(t, srv)
	b.signIn("alice")
	b.mustPost("/nav/booking", nil)

	code, body := b.post("/booking/visitors/2", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, "一个账号最多可预约1人") {
		t.Error("expected cap toast")
	}
	if n := b.state().SelectedCount; n != 1 {
		t.Errorf("selected = %d, want 1", n)
	}
}

func TestBookingRecords(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")
	b.mustPost("/nav/profile", nil)
	b.mustPost("/nav/bookingRecord", nil)

	_, body := b.post("/records/qr/2", nil)
	if !strings.Contains(body, "/records/2/qr.png") {
		t.Error("expected qr modal")
	}
	if code, _ := b.post("/records/qr/1", nil); code != http.StatusConflict {
		t.Errorf("qr of completed record: status = %d, want 409", code)
	}
	b.mustPost("/records/qr/close", nil)

	b.mustPost("/records/cancel/3", nil)
	_, body = b.post("/records/cancel/confirm", nil)
	if !strings.Contains(body, "取消预约成功") {
		t.Error("expected cancel toast")
	}
	if n := len(b.state().Records); n != 4 {
		t.Errorf("records = %d, want 4", n)
	}
	if code, _ := b.post("/records/cancel/confirm", nil); code != http.StatusConflict {
		t.Errorf("second confirm: status = %d, want 409", code)
	}
}

func TestQRCode(t *testing.T) {
	b := newBrowser(t, testServer(t))

	resp := b.do("GET", "/records/2/qr.png", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content-type = %q", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("expected png data")
	}

	for _, path := range []string{"/records/1/qr.png", "/records/99/qr.png", "/records/x/qr.png"} {
		if resp := b.do("GET", path, nil); resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestVisitorRegistration(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")
	b.mustPost("/nav/profile", nil)
	b.mustPost("/nav/visitorRegistration", nil)

	_, body := b.post("/visitors", url.Values{"name": {"赵六"}})
	if !strings.Contains(body, "请填写完整信息") {
		t.Error("expected incomplete toast")
	}

	_, body = b.post("/visitors", url.Values{"name": {"赵六"}, "phone": {"13700000000"}, "id_card": {"110101"}})
	if !strings.Contains(body, "添加成功") || !strings.Contains(body, "赵六") {
		t.Error("expected added visitor")
	}

	_, body = b.post("/visitors/edit/4", nil)
	if !strings.Contains(body, `value="赵六"`) {
		t.Error("expected edit modal with current values")
	}
	_, body = b.post("/visitors/edit/save", url.Values{"name": {"赵七"}, "phone": {"13700000000"}, "id_card": {"110101"}})
	if !strings.Contains(body, "修改成功") {
		t.Error("expected edit toast")
	}

	_, body = b.post("/visitors/remove/4", nil)
	if !strings.Contains(body, "确定要删除访客“赵七”吗？") {
		t.Error("expected remove confirmation")
	}
	b.mustPost("/visitors/remove/cancel", nil)
	if n := len(b.state().Visitors); n != 4 {
		t.Errorf("visitors after cancel = %d, want 4", n)
	}

	b.mustPost("/visitors/remove/4", nil)
	_, body = b.post("/visitors/remove/confirm", nil)
	if !strings.Contains(body, "删除成功") {
		t.Error("expected remove toast")
	}
	if n := len(b.state().Visitors); n != 3 {
		t.Errorf("visitors = %d, want 3", n)
	}
}

func TestEditProfile(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")
	b.mustPost("/nav/profile", nil)
	b.mustPost("/nav/editProfile", nil)

	_, body := b.post("/profile/password/open", nil)
	if !strings.Contains(body, "确认修改") {
		t.Error("expected password modal")
	}
	_, body = b.post("/profile/password", url.Values{"old_password": {"x"}, "new_password": {"123456"}, "confirm_password": {"123456"}})
	if !strings.Contains(body, "密码修改成功！") {
		t.Error("expected password toast")
	}

	form := url.Values{"username": {"查理"}, "gender": {"female"}, "phone": {"13900000000"}, "avatar": {"👩"}}
	_, body = b.post("/profile", form)
	if !strings.Contains(body, "个人信息修改成功！") {
		t.Error("expected profile toast")
	}
	st := b.state()
	if st.Nav.Page != navigation.Profile || st.Profile.Username != "查理" || st.Nav.Username != "查理" {
		t.Errorf("state = %+v / %+v", st.Nav, st.Profile)
	}
}

func TestLogout(t *testing.T) {
	b := newBrowser(t, testServer(t))
	b.signIn("alice")
	b.mustPost("/nav/profile", nil)

	b.mustPost("/logout", nil)
	if nav := b.state().Nav; nav.Page != navigation.Welcome || nav.Username != "" {
		t.Errorf("nav = %+v", nav)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := testServer(t)
	alice := newBrowser(t, srv)
	other := newBrowser(t, srv)

	alice.signIn("alice")
	if p := other.state().Nav.Page; p != navigation.Welcome {
		t.Errorf("other session page = %s, want welcome", p)
	}
}

func TestSessionRecorded(t *testing.T) {
	srv, d := testServerWithDB(t)
	b := newBrowser(t, srv)
	b.signIn("alice")

	var username, page string
	if err := d.QueryRow("SELECT username, page FROM sessions").Scan(&username, &page); err != nil {
		t.Fatalf("query: %v", err)
	}
	if username != "alice" || page != "home" {
		t.Errorf("row = %q %q", username, page)
	}
}

func TestCleanupDropsExpired(t *testing.T) {
	srv, d := testServerWithDB(t)
	b := newBrowser(t, srv)
	b.get("/")
	if srv.apps.Len() != 1 {
		t.Fatalf("apps = %d, want 1", srv.apps.Len())
	}

	if _, err := d.Exec("UPDATE sessions SET expires_at = ?", time.Now().UTC().Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := srv.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if srv.apps.Len() != 0 {
		t.Errorf("apps = %d, want 0", srv.apps.Len())
	}
}

func TestExpiredCookieDropsState(t *testing.T) {
	srv, d := testServerWithDB(t)
	b := newBrowser(t, srv)
	b.signIn("alice")

	if _, err := d.Exec("UPDATE sessions SET expires_at = ?", time.Now().UTC().Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	if p := b.state().Nav.Page; p != navigation.Welcome {
		t.Errorf("page = %s, want welcome for a fresh session", p)
	}
	if err := srv.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	var rows int
	if err := d.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 || srv.apps.Len() != 1 {
		t.Errorf("sessions = %d, apps = %d, want 1 and 1", rows, srv.apps.Len())
	}
}

func TestCSRF(t *testing.T) {
	srv := testServerWith(t, func(c *config.Config) { c.CSRFKey = strings.Repeat("ab", 32) })
	b := newBrowser(t, srv)

	_, body := b.get("/")
	if !strings.Contains(body, `name="csrf_token"`) {
		t.Error("expected csrf field in forms")
	}
	if code, _ := b.post("/nav/login", nil); code != http.StatusForbidden {
		t.Errorf("post without token: status = %d, want 403", code)
	}
}

// browser drives the server through a cookie-carrying client that follows
// the post-redirect-get responses.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, srv *Server) *browser {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &browser{t: t, base: ts.URL, client: &http.Client{Jar: jar}}
}

func (b *browser) do(method, path string, form url.Values) *http.Response {
	b.t.Helper()
	req, err := http.NewRequest(method, b.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		b.t.Fatal(err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", method, path, err)
	}
	b.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (b *browser) read(resp *http.Response) (int, string) {
	b.t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(data)
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	return b.read(b.do(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) (int, string) {
	b.t.Helper()
	return b.read(b.do(http.MethodPost, path, form))
}

func (b *browser) mustPost(path string, form url.Values) {
	b.t.Helper()
	if code, body := b.post(path, form); code != http.StatusOK {
		b.t.Fatalf("POST %s: status = %d: %s", path, code, body)
	}
}

func (b *browser) state() app.View {
	b.t.Helper()
	var v app.View
	if err := json.NewDecoder(b.do(http.MethodGet, "/api/state", nil).Body).Decode(&v); err != nil {
		b.t.Fatalf("decode state: %v", err)
	}
	return v
}

func (b *browser) signIn(username string) {
	b.t.Helper()
	b.mustPost("/nav/login", nil)
	b.mustPost("/login", url.Values{"username": {username}, "password": {"secret"}})
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Delays = config.Delays{}
	return cfg
}

func testServer(t *testing.T) *Server {
	t.Helper()
	srv, _ := testServerWithDB(t)
	return srv
}

func testServerWith(t *testing.T, modify func(*config.Config)) *Server {
	t.Helper()
	cfg := testConfig()
	modify(&cfg)
	srv, _ := newTestServer(t, cfg)
	return srv
}

func testServerWithDB(t *testing.T) (*Server, *sql.DB) {
	t.Helper()
	return newTestServer(t, testConfig())
}

func newTestServer(t *testing.T, cfg config.Config) (*Server, *sql.DB) {
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

	srv, err := NewServer(d, cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, d
}
