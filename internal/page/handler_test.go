package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"resume-web/internal/apiclient"
	"resume-web/internal/apiclient/apitest"
	"resume-web/internal/shared/server/middleware"
	"resume-web/internal/validate"
)

type counterPage struct{}

func (counterPage) Name() string { return "counter" }

func (counterPage) Init(ctx context.Context, st *State) error {
	resp, err := st.API.Get(ctx, "/api/resume/auth")
	if err != nil {
		st.Redirect("/")
		return nil
	}
	st.SetText("user", resp.Get("user.name").String())
	st.SetText("count", "0")
	return nil
}

func (counterPage) Events() Dispatch {
	return Dispatch{
		"inc": func(_ context.Context, st *State, _ Event) error {
			var n int
			fmt.Sscanf(st.Text("count"), "%d", &n)
			st.SetText("count", fmt.Sprint(n+1))
			st.Toast(ToastSuccess, "Counted", "")
			return nil
		},
		"leave": func(_ context.Context, st *State, _ Event) error {
			st.Redirect("/")
			return nil
		},
		"download": func(_ context.Context, st *State, _ Event) error {
			st.Attachment = &apiclient.Attachment{FileName: "../x/summary.txt", ContentType: "text/plain", Data: []byte("hello")}
			return nil
		},
		"upload": func(_ context.Context, st *State, ev Event) error {
			if ev.File == nil {
				return errors.New("no file")
			}
			st.SetText("file", ev.File.FileName+":"+fmt.Sprint(len(ev.File.Data)))
			return nil
		},
		"boom": func(context.Context, *State, Event) error {
			return errors.New("boom")
		},
	}
}

func (counterPage) Render(w io.Writer, st *State, theme string) error {
	fmt.Fprintf(w, "user=%s count=%s theme=%s file=%s", st.Text("user"), st.Text("count"), theme, st.Text("file"))
	for _, t := range st.Doc.Toasts {
		fmt.Fprintf(w, " toast=%s", t.Title)
	}
	return nil
}

type harness struct {
	t       *testing.T
	router  *gin.Engine
	repo    *MemoryRepo
	backend *apitest.Backend
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	backend := apitest.New(t)
	backend.Handle("GET /api/resume/auth", func(c apitest.Call) apitest.Reply {
		if !strings.Contains(c.Header.Get("Cookie"), "token=abc") {
			return apitest.Reply{Status: http.StatusUnauthorized, Body: map[string]any{"message": "no token"}}
		}
		return apitest.Reply{Status: http.StatusOK, Body: map[string]any{"user": map[string]any{"name": "Ada", "role": "user"}}}
	})
	repo := NewMemoryRepo(time.Hour)
	h := NewHandler("/counter", counterPage{}, repo, backend.Client(), nil, false)
	r := gin.New()
	r.Use(middleware.Session())
	h.RegisterRoutes(r)
	return &harness{t: t, router: r, repo: repo, backend: backend}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: apiclient.CookiePrefix + "token", Value: "abc"})
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	return resp
}

func (h *harness) start() string {
	resp := h.do(httptest.NewRequest(http.MethodGet, "/counter", nil))
	if resp.Code != http.StatusSeeOther {
		h.t.Fatalf("start: expected 303, got %d", resp.Code)
	}
	loc, _ := url.Parse(resp.Header().Get("Location"))
	sid := loc.Query().Get("sid")
	if loc.Path != "/counter" || sid == "" {
		h.t.Fatalf("unexpected location %q", loc)
	}
	return sid
}

func (h *harness) post(sid, event string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/counter?sid="+sid, strings.NewReader(url.Values{EventField: {event}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func (h *harness) page(sid string) string {
	resp := h.do(httptest.NewRequest(http.MethodGet, "/counter?sid="+sid, nil))
	if resp.Code != http.StatusOK {
		h.t.Fatalf("render: expected 200, got %d", resp.Code)
	}
	return resp.Body.String()
}

func TestHandlerStartsSessionAndRenders(t *testing.T) {
	h := newHarness(t)
	sid := h.start()
	body := h.page(sid)
	if body != "user=Ada count=0 theme=dark file=" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestHandlerInitRedirectSkipsSession(t *testing.T) {
	h := newHarness(t)
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/counter", nil))
	if resp.Code != http.StatusSeeOther || resp.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", resp.Code, resp.Header().Get("Location"))
	}
}

func TestHandlerEventPostRedirectGetAndToastOnce(t *testing.T) {
	h := newHarness(t)
	sid := h.start()
	resp := h.post(sid, "inc")
	if resp.Code != http.StatusSeeOther || resp.Header().Get("Location") != "/counter?sid="+sid {
		t.Fatalf("expected PRG redirect, got %d %q", resp.Code, resp.Header().Get("Location"))
	}
	if body := h.page(sid); !strings.Contains(body, "count=1") || !strings.Contains(body, "toast=Counted") {
		t.Fatalf("unexpected body %q", body)
	}
	if body := h.page(sid); strings.Contains(body, "toast=") {
		t.Fatalf("toast should show once, got %q", body)
	}
}

func TestHandlerUnknownEventIs400(t *testing.T) {
	h := newHarness(t)
	sid := h.start()
	if resp := h.post(sid, "nope"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerHandlerErrorBecomesToast(t *testing.T) {
	h := newHarness(t)
	sid := h.start()
	if resp := h.post(sid, "boom"); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}
	if body := h.page(sid); !strings.Contains(body, "toast=Error") {
		t.Fatalf("expected error toast, got %q", body)
	}
}

func TestHandlerRedirectEndsSession(t *testing.T) {
	h := newHarness(t)
	sid := h.start()
	resp := h.post(sid, "leave")
	if resp.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %q", resp.Header().Get("Location"))
	}
	if _, err := h.repo.Get(context.Background(), sid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("session should be gone, got %v", err)
	}
	resp = h.do(httptest.NewRequest(http.MethodGet, "/counter?sid="+sid, nil))
	if resp.Code != http.StatusSeeOther || resp.Header().Get("Location") != "/counter" {
		t.Fatalf("stale sid should restart, got %d %q", resp.Code, resp.Header().Get("Location"))
	}
}

func TestHandlerRestartsSessionForOtherCredentials(t *testing.T) {
	h := newHarness(t)
	sid := h.start()

	other := func(method string) *httptest.ResponseRecorder {
		var body io.Reader
		if method == http.MethodPost {
			body = strings.NewReader(url.Values{EventField: {"inc"}}.Encode())
		}
		req := httptest.NewRequest(method, "/counter?sid="+sid, body)
		if body != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		req.AddCookie(&http.Cookie{Name: apiclient.CookiePrefix + "token", Value: "someone-else"})
		resp := httptest.NewRecorder()
		h.router.ServeHTTP(resp, req)
		return resp
	}
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		resp := other(method)
		if resp.Code != http.StatusSeeOther || resp.Header().Get("Location") != "/counter" {
			t.Fatalf("%s with other credentials should restart, got %d %q", method, resp.Code, resp.Header().Get("Location"))
		}
	}
	anonymous := httptest.NewRecorder()
	h.router.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/counter?sid="+sid, nil))
	if anonymous.Code != http.StatusSeeOther || anonymous.Header().Get("Location") != "/counter" {
		t.Fatalf("anonymous request should restart, got %d", anonymous.Code)
	}

	if body := h.page(sid); body != "user=Ada count=0 theme=dark file=" {
		t.Fatalf("owner's session should be untouched, got %q", body)
	}
}

func TestHandlerSendsAttachment(t *testing.T) {
	h := newHarness(t)
	sid := h.start()
	resp := h.post(sid, "download")
	if resp.Code != http.StatusOK || resp.Body.String() != "hello" {
		t.Fatalf("unexpected attachment response %d %q", resp.Code, resp.Body.String())
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != "attachment; filename=download.txt" {
		t.Fatalf("unexpected disposition %q", cd)
	}
}

func TestHandlerReadsMultipartUpload(t *testing.T) {
	h := newHarness(t)
	sid := h.start()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField(EventField, "upload")
	fw, _ := mw.CreateFormFile(FileField, "cv.pdf")
	_, _ = fw.Write([]byte("%PDF-1.4 data"))
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/counter?sid="+sid, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if resp := h.do(req); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}
	if page := h.page(sid); !strings.Contains(page, "file=cv.pdf:13") {
		t.Fatalf("upload not seen: %q", page)
	}
}

func TestHandlerOversizedUploadRedirectsWithMessage(t *testing.T) {
	h := newHarness(t)
	sid := h.start()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField(EventField, "upload")
	fw, _ := mw.CreateFormFile(FileField, "cv.pdf")
	_, _ = fw.Write(bytes.Repeat([]byte("a"), maxEventBody+1))
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/counter?sid="+sid, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := h.do(req)
	if resp.Code != http.StatusSeeOther || resp.Header().Get("Location") != "/counter?sid="+sid {
		t.Fatalf("expected PRG redirect, got %d %q", resp.Code, resp.Header().Get("Location"))
	}
	st, err := h.repo.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	toasts := st.TakeToasts()
	if len(toasts) != 1 || toasts[0].Text != validate.MsgUploadTooLarge {
		t.Fatalf("toasts = %+v", toasts)
	}
}

func TestThemeHandlerToggles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Session())
	r.POST("/theme", ThemeHandler(false))

	req := httptest.NewRequest(http.MethodPost, "/theme", nil)
	req.Header.Set("Referer", "http://example.com/home?sid=abc")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Header().Get("Location") != "/home?sid=abc" {
		t.Fatalf("unexpected location %q", resp.Header().Get("Location"))
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), "theme=light") {
		t.Fatalf("expected light theme cookie, got %q", resp.Header().Get("Set-Cookie"))
	}
}
