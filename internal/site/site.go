// Package site renders the portfolio page, its lazily loaded section
// fragments and the static assets it needs.
package site

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/analytics"
	"github.com/kundanpawar/portfolio/internal/config"
	"github.com/kundanpawar/portfolio/internal/contact"
	"github.com/kundanpawar/portfolio/internal/content"
	"github.com/kundanpawar/portfolio/internal/filter"
	"github.com/kundanpawar/portfolio/internal/mail"
	"github.com/kundanpawar/portfolio/internal/scrollspy"
	"github.com/kundanpawar/portfolio/internal/shell"
)

// fragmentHeader marks requests from the page script that want a bare
// section instead of the whole page.
const fragmentHeader = "X-Fragment"

// navigateKey marks a fragment fetched because the visitor navigated to it.
const navigateKey = "nav"

// Handler serves the page. It holds no per-visitor state.
type Handler struct {
	cfg       *config.Config
	store     *content.Store
	events    *analytics.Service
	submitter contact.Submitter
	logger    *zap.Logger

	tmpl    *template.Template
	md      goldmark.Markdown
	bio     template.HTML
	assets  fs.FS
	started time.Time
}

// New creates a Handler. Submissions from the HTML form go to submitter.
func New(cfg *config.Config, store *content.Store, events *analytics.Service, submitter contact.Submitter, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	h := &Handler{
		cfg:       cfg,
		store:     store,
		events:    events,
		submitter: submitter,
		logger:    logger.Named("site"),
		tmpl:      tmpl,
		md:        newMarkdown(),
		assets:    os.DirFS(cfg.Assets.Dir),
		started:   time.Now(),
	}
	if h.bio, err = renderMarkdown(h.md, store.Personal().Bio); err != nil {
		return nil, fmt.Errorf("rendering bio: %w", err)
	}
	return h, nil
}

// RegisterRoutes mounts the page routes on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.handleIndex)
	r.Get("/sections/{id}", h.handleSection)
	r.Post("/contact", h.handleContact)
	r.Get("/resume", h.handleResume)
	r.Get("/assets/*", h.handleAsset)
	r.Get("/static/{name}", h.handleStatic)
	r.NotFound(h.handleNotFound)
}

func (h *Handler) newShell() *shell.Shell {
	return shell.New(scrollspy.DefaultSections,
		shell.WithSplashDuration(h.cfg.UI.SplashDuration),
		shell.WithRecorder(h.events),
	)
}

func idleForm() contact.State {
	return contact.State{Status: contact.StatusIdle}
}

// handleIndex renders the page in its splash phase with skeletons, or
// fully materialized when ?full=1 is set for clients without scripting.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	sh := h.newShell()
	defer sh.Close()
	if r.URL.Query().Get("full") == "1" {
		sh.Complete()
	}
	h.events.TrackPageView("/")

	v, err := h.buildView(r.URL.Query(), sh.Snapshot(), idleForm())
	if err != nil {
		h.viewError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "page", v)
}

// handleSection renders one section: the lazy boundary of the page. A
// fetch made by sidebar navigation goes through the shell's Visit so the
// navigation is recorded.
func (h *Handler) handleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sh := h.newShell()
	defer sh.Close()
	load := sh.Load
	if r.URL.Query().Get(navigateKey) == "1" {
		load = sh.Visit
	}
	if err := load(id); err != nil {
		h.handleNotFound(w, r)
		return
	}

	v, err := h.buildView(r.URL.Query(), sh.Snapshot(), idleForm())
	if err != nil {
		h.viewError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "section-"+id, v)
}

// handleContact runs one submission cycle of the form controller and
// re-renders the contact section with the outcome.
func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		h.RenderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := contact.NewController(h.submitter,
		contact.WithTimeout(h.cfg.UI.SubmitTimeout),
		contact.WithSuccessWindow(h.cfg.UI.SuccessWindow),
		contact.WithLogger(h.logger),
	)
	defer ctrl.Close()
	ctrl.SetFields(contact.Fields{
		Name:    r.PostForm.Get(contact.FieldName),
		Email:   r.PostForm.Get(contact.FieldEmail),
		Message: r.PostForm.Get(contact.FieldMessage),
	})
	ctrl.SetHoneypot(r.PostForm.Get("website"))

	status := http.StatusOK
	switch err := ctrl.Submit(r.Context()); {
	case err == nil:
		if ctrl.Status() == contact.StatusSuccess {
			h.events.TrackContact("form")
		}
	case errors.Is(err, contact.ErrInvalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, mail.ErrNotConfigured), isUnavailable(err):
		status = http.StatusServiceUnavailable
	default:
		h.events.TrackError(err, zap.String("route", "/contact"))
		status = http.StatusBadGateway
	}

	sh := h.newShell()
	defer sh.Close()
	fragment := r.Header.Get(fragmentHeader) == "1"
	if fragment {
		_ = sh.Load("contact")
	} else {
		sh.Complete()
	}
	v, err := h.buildView(r.URL.Query(), sh.Snapshot(), ctrl.State())
	if err != nil {
		h.viewError(w, r, err)
		return
	}
	if fragment {
		h.render(w, status, "section-contact", v)
		return
	}
	h.render(w, status, "page", v)
}

// isUnavailable reports whether a remote contact endpoint said the email
// service is not configured.
func isUnavailable(err error) bool {
	var ee *contact.EndpointError
	return errors.As(err, &ee) && ee.Code == http.StatusServiceUnavailable
}

// handleResume serves the resume from the assets directory, falling back to
// an external resume URL from the content file.
func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	name := h.cfg.Assets.ResumeFile
	if name != "" && fs.ValidPath(name) {
		if _, err := fs.Stat(h.assets, name); err == nil {
			h.events.TrackDownload("resume")
			w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(name)))
			http.ServeFileFS(w, r, h.assets, name)
			return
		}
	}
	if u := h.store.Personal().ResumeURL; strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://") {
		h.events.TrackDownload("resume")
		http.Redirect(w, r, u, http.StatusFound)
		return
	}
	h.handleNotFound(w, r)
}

// handleAsset serves files from the assets directory that match one of
// the configured include patterns.
func (h *Handler) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if !fs.ValidPath(name) || !h.allowed(name) {
		h.handleNotFound(w, r)
		return
	}
	info, err := fs.Stat(h.assets, name)
	if err != nil || info.IsDir() {
		h.handleNotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.assets, name)
}

func (h *Handler) allowed(name string) bool {
	for _, pattern := range h.cfg.Assets.Include {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(name)); err == nil && ok {
			return true
		}
	}
	return false
}

func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	var body string
	switch name := chi.URLParam(r, "name"); name {
	case "style.css":
		body = cssContent
	case "script.js":
		body = jsContent
	default:
		h.handleNotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, chi.URLParam(r, "name"), h.started, strings.NewReader(body))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "error", errorView{
		Status:  http.StatusNotFound,
		Heading: "Page not found",
		Text:    "The page you are looking for does not exist or has been moved.",
	})
}

func (h *Handler) viewError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, filter.ErrUnknownCategory) {
		h.RenderError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("building view", zap.Error(err))
	h.RenderError(w, r, http.StatusInternalServerError, err.Error())
}
