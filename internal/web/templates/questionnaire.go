package templates

import (
	"context"
	"io"
	"slices"
	"strconv"

	"github.com/a-h/templ"

	"github.com/boozedog/contextcrafter/internal/answer"
	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/ui"
)

// QuestionnaireData holds data for one questionnaire step.
type QuestionnaireData struct {
	Template catalog.Template
	Question catalog.Question
	Value    answer.Value
	Position int
	Ratio    float64
	Complete bool
	Error    string
}

// QuestionnairePage renders the current question as a form.
func QuestionnairePage(d QuestionnaireData) templ.Component {
	return Layout(d.Template.Title, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		total := len(d.Template.Questions)
		step, pct := ui.StepProgress(d.Position, total)

		h.raw(`<h1>`)
		h.text(d.Template.Icon + " " + d.Template.Title)
		h.raw(`</h1><p class="muted">`)
		h.text(step + " · " + pct)
		h.raw(`</p>`)

		if d.Error != "" {
			h.raw(`<div class="error" role="alert">`)
			h.text(d.Error)
			h.raw(`</div>`)
		}

		h.raw(`<form class="panel" method="post"`)
		h.attr("action", questionnaireURL(d.Template.ID))
		h.raw(`><input type="hidden" name="question"`)
		h.attr("value", d.Question.ID)
		h.raw(`><h2><label for="value">`)
		h.text(d.Question.Label)
		h.raw(`</label>`)
		if d.Question.Required {
			h.raw(` <span class="req" title="required">*</span>`)
		}
		h.raw(`</h2>`)
		if d.Question.Description != "" {
			h.raw(`<p class="muted">`)
			h.text(d.Question.Description)
			h.raw(`</p>`)
		}

		writeInput(h, d.Question, d.Value)

		h.raw(`<div class="actions">`)
		h.raw(`<button type="submit" name="action" value="back"`)
		h.flag("disabled", d.Position == 0)
		h.raw(`>Back</button><button type="submit" name="action" value="save">Save</button>`)
		next := "Next"
		if d.Position == total-1 {
			next = "Finish"
		}
		h.raw(`<button class="next" type="submit" name="action" value="next">`)
		h.text(next)
		h.raw(`</button></div></form>`)

		writeIndicator(h, d.Ratio)
		if d.Complete {
			h.raw(`<p><a href="/result">Generate prompt</a></p>`)
		}
		return h.err
	}))
}

func writeInput(h *html, q catalog.Question, v answer.Value) {
	switch q.Kind {
	case catalog.KindText:
		h.raw(`<input type="text" id="value" name="value"`)
		h.attr("value", v.String())
		h.attr("placeholder", q.Placeholder)
		h.raw(`>`)
	case catalog.KindTextarea:
		h.raw(`<textarea id="value" name="value" rows="6"`)
		h.attr("placeholder", q.Placeholder)
		h.raw(`>`)
		h.text(v.String())
		h.raw(`</textarea>`)
	case catalog.KindSelect:
		h.raw(`<select id="value" name="value"><option value="">Choose…</option>`)
		for _, c := range q.Choices {
			h.raw(`<option`)
			h.attr("value", c)
			h.flag("selected", v.String() == c)
			h.raw(`>`)
			h.text(c)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
	case catalog.KindRadio, catalog.KindMultiSelect:
		typ := "radio"
		if q.Kind.IsMulti() {
			typ = "checkbox"
		}
		for i, c := range q.Choices {
			checked := v.String() == c
			if q.Kind.IsMulti() {
				checked = slices.Contains(v.Items(), c)
			}
			h.raw(`<label class="choice"><input name="value"`)
			h.attr("type", typ)
			h.attr("id", "value-"+strconv.Itoa(i))
			h.attr("value", c)
			h.flag("checked", checked)
			h.raw(`> `)
			h.text(c)
			h.raw(`</label>`)
		}
	}
}

func writeIndicator(h *html, ratio float64) {
	pct := ui.Percent(ratio)
	h.raw(`<div class="indicator"><div class="bar"><span`)
	h.attr("style", "width:"+strconv.Itoa(pct)+"%")
	h.raw(`></span></div><span class="muted">`)
	h.text(strconv.Itoa(pct) + "% · " + ui.StatusText(pct))
	h.raw(`</span></div>`)
}
