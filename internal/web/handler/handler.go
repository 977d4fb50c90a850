package handler

import (
	"net/http"
	"sync"

	"github.com/a-h/templ"

	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/logger"
	"github.com/boozedog/contextcrafter/internal/persist"
	"github.com/boozedog/contextcrafter/internal/prompt"
	"github.com/boozedog/contextcrafter/internal/web/sse"
	"github.com/boozedog/contextcrafter/internal/web/templates"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	// mu serializes read-modify-write cycles on the stored session.
	mu      sync.Mutex
	catalog *catalog.Catalog
	records *persist.Records
	gen     *prompt.Generator
	broker  *sse.Broker
	log     *logger.Logger
}

// New creates a new Handler.
func New(cat *catalog.Catalog, records *persist.Records, broker *sse.Broker, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		catalog: cat,
		records: records,
		gen:     prompt.NewGenerator(cat),
		broker:  broker,
		log:     log.With("component", "web"),
	}
}

// Home renders the catalog with a resume banner for a stored session.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := templates.HomeData{Templates: h.catalog.All()}
	if s, ok := h.records.LoadSession(); ok {
		if t, ok := h.catalog.Lookup(s.TaskType); ok {
			data.Session = &templates.SessionSummary{
				TemplateID: t.ID,
				Title:      t.Title,
				Position:   s.CurrentStep,
				Total:      len(t.Questions),
				Complete:   s.IsComplete,
			}
		}
	}
	h.render(w, r, http.StatusOK, templates.HomePage(data))
}

// Reset clears the stored session. With form field "all" set it also
// clears the prompt history.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.records.ClearSession()
	if r.FormValue("all") != "" {
		h.records.ClearPrompts()
	}
	h.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// machine returns a collector for t that persists every change, resumed
// from the stored session when it belongs to t.
func (h *Handler) machine(t catalog.Template) *workflow.Machine {
	m := workflow.New(t, workflow.OnChange(h.records.SaveSession))
	if s, ok := h.records.LoadSessionFor(t.ID); ok {
		m.Resume(s)
	}
	return m
}

func (h *Handler) message(w http.ResponseWriter, r *http.Request, status int, d templates.MessageData) {
	h.render(w, r, status, templates.MessagePage(d))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.log.Warn("render page", "path", r.URL.Path, "err", err)
	}
}
