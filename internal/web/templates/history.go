package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/boozedog/contextcrafter/internal/prompt"
)

// HistoryEntry is one row of the history table.
type HistoryEntry struct {
	Prompt prompt.Generated
	Title  string
}

// HistoryData holds data for the history page.
type HistoryData struct {
	Entries []HistoryEntry
}

// HistoryPage lists stored prompts, newest first.
func HistoryPage(d HistoryData) templ.Component {
	return Layout("History", templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<h1>Prompt history</h1>`)
		if len(d.Entries) == 0 {
			h.raw(`<p class="muted">No prompts yet. <a href="/">Pick a template</a> to create one.</p>`)
			return h.err
		}

		h.raw(`<table><thead><tr><th>#</th><th>Template</th><th>Preview</th><th>Created</th></tr></thead><tbody>`)
		for i, e := range d.Entries {
			h.raw(`<tr><td>`)
			h.text(strconv.Itoa(i + 1))
			h.raw(`</td><td><a`)
			h.attr("href", promptURL(e.Prompt.ID))
			h.raw(`>`)
			h.text(e.Title)
			h.raw(`</a></td><td class="muted">`)
			h.text(firstLine(e.Prompt.Conversational, 80))
			h.raw(`</td><td`)
			h.attr("title", e.Prompt.CreatedAt.Format("2006-01-02 15:04:05"))
			h.raw(`>`)
			h.text(relativeTime(e.Prompt.CreatedAt))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		h.raw(`<form method="post" action="/reset"><input type="hidden" name="all" value="1"><div class="actions"><button type="submit">Clear history and session</button></div></form>`)
		return h.err
	}))
}

// PromptData holds data for a single generated prompt.
type PromptData struct {
	Prompt prompt.Generated
	Title  string
	Style  prompt.Style
	// Preview is the structured prompt rendered to HTML.
	Preview string
}

// PromptPage shows one prompt in the selected style with a style toggle.
func PromptPage(d PromptData) templ.Component {
	return Layout(d.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<h1>`)
		h.text(d.Title)
		h.raw(`</h1><p class="muted">`)
		h.text(d.Prompt.CreatedAt.Format("2006-01-02 15:04") + " · " + d.Prompt.ID)
		h.raw(`</p><p class="toggle">`)
		for _, s := range prompt.Styles {
			h.raw(`<a`)
			h.attr("href", promptStyleURL(d.Prompt.ID, s))
			if s == d.Style {
				h.raw(` class="active" aria-current="true"`)
			}
			h.raw(`>`)
			h.text(string(s))
			h.raw(`</a>`)
		}
		h.raw(`</p><pre id="prompt">`)
		h.text(d.Prompt.ByStyle(d.Style))
		h.raw(`</pre>`)

		if d.Style == prompt.Structured && d.Preview != "" {
			h.raw(`<h2>Preview</h2><div class="panel preview">`)
			if h.err != nil {
				return h.err
			}
			if err := templ.Raw(d.Preview).Render(ctx, w); err != nil {
				return err
			}
			h.raw(`</div>`)
		}

		h.raw(`<form method="post" action="/reset"><div class="actions"><button type="submit">Start new</button></div></form>`)
		return h.err
	}))
}
