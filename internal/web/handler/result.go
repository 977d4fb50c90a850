package handler

import (
	"bytes"
	"errors"
	"html"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/web/templates"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

// Result generates a prompt from the completed session, stores it in the
// history and redirects to it.
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.records.LoadSession()
	if !ok {
		h.notReady(w, r, "/", "Pick a template")
		return
	}
	t, err := h.catalog.Get(s.TaskType)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	set, complete := workflow.Reconcile(t, s)
	if !complete {
		h.notReady(w, r, "/questionnaire/"+t.ID, "Continue the questionnaire")
		return
	}

	g, err := h.gen.Create(t.ID, set)
	if err != nil {
		h.log.Error("generate prompt", "template", t.ID, "err", err)
		http.Error(w, "failed to generate prompt", http.StatusInternalServerError)
		return
	}

	h.records.AppendPrompt(g)
	h.log.Info("prompt generated", "id", g.ID, "template", g.TaskType)
	http.Redirect(w, r, "/history/"+g.ID, http.StatusSeeOther)
}

func (h *Handler) notReady(w http.ResponseWriter, r *http.Request, link, text string) {
	h.message(w, r, http.StatusConflict, templates.MessageData{
		Title:    "Not ready yet",
		Message:  "questionnaire not complete",
		Link:     link,
		LinkText: text,
	})
}

// markdownHTML renders md with goldmark, falling back to an escaped
// preformatted block.
func markdownHTML(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "<pre>" + html.EscapeString(md) + "</pre>"
	}
	return buf.String()
}
