package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kundanpawar/portfolio/internal/config"
	"github.com/kundanpawar/portfolio/internal/contact"
	"github.com/kundanpawar/portfolio/internal/content"
	"github.com/kundanpawar/portfolio/internal/filter"
	"github.com/kundanpawar/portfolio/internal/scrollspy"
	"github.com/kundanpawar/portfolio/internal/shell"
)

// Query keys for the two filterable sections.
const (
	projectCategoryKey = "category"
	projectQueryKey    = "q"
	skillCategoryKey   = "skill_category"
	skillQueryKey      = "skill_q"
)

var navLabels = map[string]string{
	"home":       "Home",
	"about":      "About",
	"experience": "Experience",
	"projects":   "Projects",
	"skills":     "Skills",
	"contact":    "Contact",
}

var titleCase = cases.Title(language.English)

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"ms":    func(d time.Duration) int64 { return d.Milliseconds() },
		"css":   func(s string) template.CSS { return template.CSS(s) },
		"join":  strings.Join,
		"lower": strings.ToLower,
	}
	t := template.New("portfolio").Funcs(funcs)
	for name, src := range map[string]string{
		"page":     pageTemplate,
		"sections": sectionsTemplate,
		"errors":   errorTemplate,
	} {
		if _, err := t.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
	}
	return t, nil
}

type navItem struct {
	ID      string
	Label   string
	Current bool
}

type renderedSection struct {
	shell.Section
	Body template.HTML
}

// clientConfig is handed to the page script as JSON.
type clientConfig struct {
	Session           string   `json:"session"`
	Sections          []string `json:"sections"`
	Offset            float64  `json:"offset"`
	NavigationSpacing int      `json:"navigationSpacing"`
	RetryDelays       []int64  `json:"retryDelays"`
	SplashMs          int64    `json:"splashMs"`
	SuccessWindowMs   int64    `json:"successWindowMs"`
	SubmitTimeoutMs   int64    `json:"submitTimeoutMs"`
	Ready             bool     `json:"ready"`
}

type categoryView struct {
	Label  string
	Count  int
	Active bool
	URL    string
	Query  string
}

type filterView struct {
	CategoryKey string
	QueryKey    string
	State       filter.State
	Categories  []categoryView
	Shown       int
	Total       int
	ClearURL    string
	ClearQuery  string
}

// view is the data behind the page and every section fragment.
type view struct {
	Site          content.SiteConfig
	Personal      content.PersonalInfo
	Bio           template.HTML
	Contact       content.ContactInfo
	Social        []content.SocialLink
	Education     content.Education
	Languages     []content.Language
	Strengths     []string
	Achievements  []string
	Experience    []content.Experience
	Featured      []content.Project
	Projects      filter.Result[content.Project]
	ProjectFilter filterView
	Skills        filter.Result[content.Skill]
	SkillFilter   filterView
	Form          contact.State
	Nav           []navItem
	Shell         shell.Snapshot
	Sections      []renderedSection
	Client        clientConfig
	Animation     config.AnimationConfig
	MeasurementID string
}

// filtered applies the filter named by catKey and queryKey in q.
func filtered[T filter.Item](items []T, q url.Values, section, catKey, queryKey string) (filter.Result[T], filterView, error) {
	f := filter.New(items)
	if err := f.Apply(filter.State{ActiveCategory: q.Get(catKey), Query: q.Get(queryKey)}); err != nil {
		return filter.Result[T]{}, filterView{}, fmt.Errorf("%s: %w", section, err)
	}
	res := f.Visible()
	counts := f.Counts()

	fv := filterView{
		CategoryKey: catKey,
		QueryKey:    queryKey,
		State:       res.State,
		Shown:       len(res.Items),
		Total:       res.Total,
	}
	// Clearing the search keeps the selected category.
	keep := url.Values{catKey: {res.State.ActiveCategory}}
	fv.ClearQuery = keep.Encode()
	fv.ClearURL = "/?full=1&" + fv.ClearQuery + "#" + section
	for _, c := range f.Categories() {
		params := url.Values{catKey: {c}}
		if res.State.Query != "" {
			params.Set(queryKey, res.State.Query)
		}
		enc := params.Encode()
		fv.Categories = append(fv.Categories, categoryView{
			Label:  titleCase.String(c),
			Count:  counts[c],
			Active: c == res.State.ActiveCategory,
			URL:    "/?full=1&" + enc + "#" + section,
			Query:  enc,
		})
	}
	return res, fv, nil
}

// buildView assembles the data for one request. Sections the shell reports
// as loaded are rendered into the view.
func (h *Handler) buildView(q url.Values, snap shell.Snapshot, form contact.State) (*view, error) {
	projects, projectFilter, err := filtered(h.store.Projects(), q, "projects", projectCategoryKey, projectQueryKey)
	if err != nil {
		return nil, err
	}
	skills, skillFilter, err := filtered(h.store.Skills(), q, "skills", skillCategoryKey, skillQueryKey)
	if err != nil {
		return nil, err
	}

	ui := h.cfg.UI
	delays := make([]int64, len(ui.RetryDelays))
	for i, d := range ui.RetryDelays {
		delays[i] = d.Milliseconds()
	}
	sections := make([]string, len(snap.Sections))
	for i, s := range snap.Sections {
		sections[i] = s.ID
	}

	v := &view{
		Site:          h.store.Site(),
		Personal:      h.store.Personal(),
		Bio:           h.bio,
		Contact:       h.store.Contact(),
		Social:        h.store.Social(),
		Education:     h.store.Education(),
		Languages:     h.store.Languages(),
		Strengths:     h.store.KeyStrengths(),
		Achievements:  h.store.KeyAchievements(),
		Experience:    h.store.Experience(),
		Featured:      h.store.FeaturedProjects(),
		Projects:      projects,
		ProjectFilter: projectFilter,
		Skills:        skills,
		SkillFilter:   skillFilter,
		Form:          form,
		Shell:         snap,
		Animation:     ui.Animation,
		MeasurementID: h.events.MeasurementID(),
		Client: clientConfig{
			Session:           snap.SessionID,
			Sections:          sections,
			Offset:            ui.ScrollOffset,
			NavigationSpacing: scrollspy.NavigationSpacing,
			RetryDelays:       delays,
			SplashMs:          ui.SplashDuration.Milliseconds(),
			SuccessWindowMs:   ui.SuccessWindow.Milliseconds(),
			SubmitTimeoutMs:   ui.SubmitTimeout.Milliseconds(),
			Ready:             snap.Phase == shell.PhaseReady,
		},
	}
	for i, id := range sections {
		v.Nav = append(v.Nav, navItem{ID: id, Label: navLabel(id), Current: i == 0})
	}
	for _, s := range snap.Sections {
		rs := renderedSection{Section: s}
		if s.Loaded {
			body, err := h.renderString("section-"+s.ID, v)
			if err != nil {
				return nil, err
			}
			rs.Body = template.HTML(body)
		}
		v.Sections = append(v.Sections, rs)
	}
	return v, nil
}

func navLabel(id string) string {
	if l, ok := navLabels[id]; ok {
		return l
	}
	return titleCase.String(id)
}

func (h *Handler) renderString(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// render executes a template fully before writing so a failure never
// leaves a half-written page.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	body, err := h.renderString(name, data)
	if err != nil {
		h.logger.Error("render failed", zap.String("template", name), zap.Error(err))
		h.events.TrackError(err, zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

type errorView struct {
	Status   int
	Heading  string
	Text     string
	RetryURL string
	Detail   string
}

// RenderError writes the full-page recovery screen. detail is shown only
// in development mode.
func (h *Handler) RenderError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	v := errorView{
		Status:   status,
		Heading:  "Something went wrong",
		Text:     "An unexpected error occurred while rendering this page.",
		RetryURL: r.URL.RequestURI(),
	}
	if status < http.StatusInternalServerError {
		v.Heading = http.StatusText(status)
		v.Text = "The request could not be completed."
	}
	if h.cfg.Dev {
		v.Detail = detail
	}
	h.render(w, status, "error", v)
}
