package handler

import (
	"net/http"

	"github.com/boozedog/contextcrafter/internal/prompt"
	"github.com/boozedog/contextcrafter/internal/web/templates"
)

// History lists stored prompts, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	var data templates.HistoryData
	for _, g := range h.records.Prompts() {
		data.Entries = append(data.Entries, templates.HistoryEntry{Prompt: g, Title: h.title(g.TaskType)})
	}
	h.render(w, r, http.StatusOK, templates.HistoryPage(data))
}

// Prompt shows one stored prompt. The id may also be a 1-based history
// position or a unique id prefix.
func (h *Handler) Prompt(w http.ResponseWriter, r *http.Request) {
	g, ok := h.records.FindPrompt(r.PathValue("id"))
	if !ok {
		http.Error(w, "Prompt not found", http.StatusNotFound)
		return
	}

	style := prompt.Structured
	if q := r.URL.Query().Get("style"); q != "" {
		s, err := prompt.StyleFromAlias(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		style = s
	}

	data := templates.PromptData{
		Prompt: g,
		Title:  h.title(g.TaskType),
		Style:  style,
	}
	if style == prompt.Structured {
		data.Preview = markdownHTML(g.Structured)
	}
	h.render(w, r, http.StatusOK, templates.PromptPage(data))
}

// title returns the catalog title for a template id, or the id itself when
// the catalog no longer has it.
func (h *Handler) title(templateID string) string {
	if t, ok := h.catalog.Lookup(templateID); ok {
		return t.Title
	}
	return templateID
}
