package handler

import (
	"fmt"
	"net/http"

	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/web/templates"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

// Questionnaire renders the current question of the template. Viewing
// never writes the session.
func (h *Handler) Questionnaire(w http.ResponseWriter, r *http.Request) {
	t, ok := h.catalog.Lookup(r.PathValue("id"))
	if !ok {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	h.mu.Lock()
	m := workflow.New(t)
	if s, ok := h.records.LoadSessionFor(t.ID); ok {
		m.Resume(s)
	}
	h.mu.Unlock()

	h.renderQuestion(w, r, http.StatusOK, m, "")
}

// SubmitAnswer stores the posted answer and applies the form action:
// "next" advances, "back" retreats and "save" only stores.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	t, ok := h.catalog.Lookup(r.PathValue("id"))
	if !ok {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	m := h.machine(t)
	if err := applyForm(m, t, r); err != nil {
		h.log.Warn("reject answer", "template", t.ID, "err", err)
		h.renderQuestion(w, r, http.StatusBadRequest, m, err.Error())
		return
	}

	switch r.PostFormValue("action") {
	case "back":
		m.Retreat()
	case "next":
		switch m.Advance() {
		case workflow.Blocked:
			h.renderQuestion(w, r, http.StatusUnprocessableEntity, m, blockedMessage(m))
			return
		case workflow.Completed, workflow.Ignored:
			http.Redirect(w, r, "/result", http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

// applyForm stores the posted value for the posted question when it
// differs from the stored one.
func applyForm(m *workflow.Machine, t catalog.Template, r *http.Request) error {
	id := r.PostFormValue("question")
	if id == "" {
		return nil
	}
	q, ok := t.Question(id)
	if !ok {
		return fmt.Errorf("%w: %s", workflow.ErrUnknownQuestion, id)
	}

	prev, had := m.Answer(id)
	v := formValue(q, prev, r.PostForm["value"])
	if had && v.Equal(prev) {
		return nil
	}
	if !had && !v.Populated() {
		return nil
	}
	return m.SetAnswer(id, v)
}

func blockedMessage(m *workflow.Machine) string {
	if !m.IsCurrentQuestionSatisfied() {
		return "This question is required."
	}
	missing := workflow.MissingRequired(m.Template(), m.Answers())
	if len(missing) == 0 {
		return "This question is required."
	}
	return fmt.Sprintf("Answer %q before finishing.", missing[0].Label)
}

func (h *Handler) renderQuestion(w http.ResponseWriter, r *http.Request, status int, m *workflow.Machine, msg string) {
	q, ok := m.Current()
	if !ok {
		http.Redirect(w, r, "/result", http.StatusSeeOther)
		return
	}
	v, _ := m.Answer(q.ID)
	h.render(w, r, status, templates.QuestionnairePage(templates.QuestionnaireData{
		Template: m.Template(),
		Question: q,
		Value:    v,
		Position: m.Position(),
		Ratio:    m.CompletenessRatio(),
		Complete: m.IsComplete(),
		Error:    msg,
	}))
}
