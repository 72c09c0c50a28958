package page

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"resume-web/internal/apiclient"
	"resume-web/internal/shared/server/middleware"
	"resume-web/internal/shared/server/respond"
	"resume-web/internal/shared/telemetry"
	"resume-web/internal/shared/util"
	"resume-web/internal/validate"
)

const (
	// FileField is the multipart field carrying the resume.
	FileField = "resume"
	// EventField names the event a form posts.
	EventField = "event"

	maxEventBody    = 4 * validate.MaxPDFBytes
	multipartMemory = validate.MaxPDFBytes + 1<<20
)

// Controller is one page: its initial load, its event table and its layout.
type Controller interface {
	Name() string
	Init(ctx context.Context, st *State) error
	Events() Dispatch
	Render(w io.Writer, st *State, theme string) error
}

// Handler serves a Controller over GET and POST at Path.
type Handler struct {
	Path         string
	Controller   Controller
	Repo         Repo
	API          *apiclient.Client
	Locks        *KeyedLock
	CookieSecure bool
	events       Dispatch
}

func NewHandler(path string, ctrl Controller, repo Repo, api *apiclient.Client, locks *KeyedLock, cookieSecure bool) *Handler {
	if locks == nil {
		locks = NewKeyedLock()
	}
	return &Handler{
		Path:         path,
		Controller:   ctrl,
		Repo:         repo,
		API:          api,
		Locks:        locks,
		CookieSecure: cookieSecure,
		events:       ctrl.Events().With(Common()),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET(h.Path, h.show)
	r.POST(h.Path, h.event)
}

func (h *Handler) location(sid string) string {
	return h.Path + "?" + url.Values{"sid": {sid}}.Encode()
}

// show renders an existing page session, or starts one when none is named.
func (h *Handler) show(c *gin.Context) {
	sid := middleware.SessionIDFromContext(c)
	if sid == "" {
		h.start(c)
		return
	}
	ctx := c.Request.Context()
	unlock := h.Locks.Lock(sid)
	defer unlock()

	st, ok := h.load(c, sid)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Controller.Render(&buf, st, middleware.ThemeFromContext(c)); err != nil {
		telemetry.Error("page.render.failed", map[string]any{"page": st.Page, "sid": sid, "error": err})
		respond.Error(c, http.StatusInternalServerError, "render_failed", "The page could not be rendered", nil)
		return
	}
	if len(st.Doc.Toasts) > 0 {
		st.TakeToasts()
		h.save(ctx, st)
	}
	respond.HTML(c, http.StatusOK, buf.Bytes())
}

// start runs the initial load for a fresh page session.
func (h *Handler) start(c *gin.Context) {
	ctx := c.Request.Context()
	st := NewState(h.Controller.Name())
	st.API = h.API.Session(apiclient.CookiesFromRequest(c.Request))
	if err := h.Controller.Init(ctx, st); err != nil {
		telemetry.Error("page.init.failed", map[string]any{"page": st.Page, "sid": st.ID, "error": err})
		st.Toast(ToastError, "Error", "Something went wrong while loading the page")
	}
	st.API.Relay(c.Writer, h.CookieSecure)
	if st.RedirectTo != "" {
		c.Redirect(http.StatusSeeOther, st.RedirectTo)
		return
	}
	st.Owner = ownerOf(st.API.Cookies())
	if !h.save(ctx, st) {
		respond.Error(c, http.StatusServiceUnavailable, "session_unavailable", "The page session could not be stored", nil)
		return
	}
	telemetry.Info("page.session.started", map[string]any{"page": st.Page, "sid": st.ID})
	c.Redirect(http.StatusSeeOther, h.location(st.ID))
}

// event dispatches one posted form and redirects back to the page.
func (h *Handler) event(c *gin.Context) {
	sid := middleware.SessionIDFromContext(c)
	if sid == "" {
		c.Redirect(http.StatusSeeOther, h.Path)
		return
	}
	ctx := c.Request.Context()
	unlock := h.Locks.Lock(sid)
	defer unlock()

	st, ok := h.load(c, sid)
	if !ok {
		return
	}
	ev, err := readEvent(c)
	if err != nil {
		if !tooLarge(c, err) {
			respond.Error(c, http.StatusBadRequest, "bad_request", "The form could not be read", nil)
			return
		}
		telemetry.Info("page.event.too_large", map[string]any{"page": st.Page, "sid": sid, "bytes": c.Request.ContentLength})
		ev = Event{Name: EventTooLarge, Form: url.Values{}}
	}
	middleware.SetPageEvent(c, ev.Name)

	st.API = h.API.Session(apiclient.CookiesFromRequest(c.Request))
	err = h.events.Run(ctx, st, ev)
	switch {
	case errors.Is(err, ErrUnknownEvent):
		respond.Error(c, http.StatusBadRequest, "unknown_event", "Unknown event", gin.H{"event": ev.Name})
		return
	case err != nil:
		st.Toast(ToastError, "Error", "Something went wrong")
	}
	st.API.Relay(c.Writer, h.CookieSecure)

	if st.RedirectTo != "" {
		if err := h.Repo.Delete(ctx, st.ID); err != nil {
			telemetry.Error("page.session.delete_failed", map[string]any{"sid": st.ID, "error": err})
		}
		c.Redirect(http.StatusSeeOther, st.RedirectTo)
		return
	}
	st.Owner = ownerOf(st.API.Cookies())
	h.save(ctx, st)
	if st.Attachment != nil {
		sendAttachment(c, st.Attachment)
		return
	}
	c.Redirect(http.StatusSeeOther, h.location(st.ID))
}

// load fetches a page session. An unknown or expired id starts over, and so
// does one built with credentials other than the request's.
func (h *Handler) load(c *gin.Context, sid string) (*State, bool) {
	st, err := h.Repo.Get(c.Request.Context(), sid)
	if errors.Is(err, ErrNotFound) {
		c.Redirect(http.StatusSeeOther, h.Path)
		return nil, false
	}
	if err != nil {
		telemetry.Error("page.session.load_failed", map[string]any{"sid": sid, "error": err})
		respond.Error(c, http.StatusServiceUnavailable, "session_unavailable", "The page session could not be loaded", nil)
		return nil, false
	}
	if st.Owner != ownerOf(apiclient.CookiesFromRequest(c.Request)) {
		telemetry.Info("page.session.owner_mismatch", map[string]any{"page": st.Page, "sid": sid})
		c.Redirect(http.StatusSeeOther, h.Path)
		return nil, false
	}
	return st, true
}

// ownerOf fingerprints a set of backend cookies independent of their order.
func ownerOf(cookies []*http.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	slices.Sort(pairs)
	return util.HashKey(strings.Join(pairs, "\n"))
}

func (h *Handler) save(ctx context.Context, st *State) bool {
	if err := h.Repo.Save(ctx, st); err != nil {
		telemetry.Error("page.session.save_failed", map[string]any{"sid": st.ID, "error": err})
		return false
	}
	return true
}

func readEvent(c *gin.Context) (Event, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEventBody)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return Event{}, errors.Wrap(err, "parse form")
	}
	ev := Event{Name: c.Request.PostForm.Get(EventField), Form: c.Request.PostForm}
	if c.Request.MultipartForm == nil {
		return ev, nil
	}
	files := c.Request.MultipartForm.File[FileField]
	if len(files) == 0 || files[0].Filename == "" {
		return ev, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return Event{}, errors.Wrap(err, "open upload")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, validate.MaxPDFBytes+1))
	if err != nil {
		return Event{}, errors.Wrap(err, "read upload")
	}
	ev.File = &validate.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}
	return ev, nil
}

// tooLarge reports whether a form failed because its body ran past maxEventBody.
func tooLarge(c *gin.Context, err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || c.Request.ContentLength > maxEventBody
}

func sendAttachment(c *gin.Context, a *apiclient.Attachment) {
	name, err := util.SanitizeFileName(a.FileName)
	if err != nil {
		name = "download.txt"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

// ThemeHandler flips the theme cookie and returns to the referring page.
func ThemeHandler(cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := middleware.ToggleTheme(middleware.ThemeFromContext(c))
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.ThemeCookie, next, 365*24*60*60, "/", "", cookieSecure, false)
		back := "/"
		if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Path != "" && ref.Host == c.Request.Host {
			back = ref.RequestURI()
		}
		c.Redirect(http.StatusSeeOther, back)
	}
}
