package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/ui"
)

// SessionSummary describes the stored questionnaire for the resume banner.
type SessionSummary struct {
	TemplateID string
	Title      string
	Position   int
	Total      int
	Complete   bool
}

// HomeData holds data for the catalog page.
type HomeData struct {
	Templates []catalog.Template
	Session   *SessionSummary
}

// HomePage lists the catalog as cards.
func HomePage(d HomeData) templ.Component {
	return Layout("Templates", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		if s := d.Session; s != nil {
			h.raw(`<div class="banner">`)
			if s.Complete {
				h.raw(`Your <strong>`)
				h.text(s.Title)
				h.raw(`</strong> questionnaire is complete. <a href="/result">Generate the prompt</a>`)
			} else {
				step, _ := ui.StepProgress(s.Position, s.Total)
				h.raw(`Continue <a`)
				h.attr("href", questionnaireURL(s.TemplateID))
				h.raw(`>`)
				h.text(s.Title)
				h.raw(`</a> (`)
				h.text(step)
				h.raw(`)`)
			}
			h.raw(` · <form method="post" action="/reset" style="display:inline"><button type="submit">Start over</button></form></div>`)
		}

		h.raw(`<h1>What are you working on?</h1><div class="cards">`)
		for _, t := range d.Templates {
			h.raw(`<a class="card"`)
			h.attr("href", questionnaireURL(t.ID))
			h.raw(`><div class="icon">`)
			h.text(t.Icon)
			h.raw(`</div><h3>`)
			h.text(t.Title)
			h.raw(`</h3><p>`)
			h.text(t.Description)
			h.raw(`</p><div class="muted">`)
			h.text(strconv.Itoa(len(t.Questions)) + " questions")
			h.raw(`</div></a>`)
		}
		h.raw(`</div>`)
		return h.err
	}))
}
