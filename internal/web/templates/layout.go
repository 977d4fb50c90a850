package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const styles = `
body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#1f2328}
nav{display:flex;gap:1rem;align-items:center;padding:.75rem 1.5rem;background:#1f2328}
nav a{color:#f6f7f9;text-decoration:none}
nav .brand{font-weight:700;margin-right:auto}
main{max-width:52rem;margin:1.5rem auto;padding:0 1rem}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(15rem,1fr));gap:1rem}
.card{display:block;background:#fff;border:1px solid #d0d7de;border-radius:8px;padding:1rem;color:inherit;text-decoration:none}
.card:hover{border-color:#8250df}
.icon{font-size:1.6rem}
.muted{color:#656d76;font-size:.9rem}
.banner{background:#ddf4ff;border:1px solid #54aeff;border-radius:8px;padding:.75rem 1rem;margin-bottom:1rem}
.error{background:#ffebe9;border:1px solid #ff8182;border-radius:8px;padding:.75rem 1rem;margin:1rem 0}
.panel{background:#fff;border:1px solid #d0d7de;border-radius:8px;padding:1.25rem}
.req{color:#cf222e}
.bar{height:.5rem;background:#d0d7de;border-radius:4px;overflow:hidden;margin:.5rem 0}
.bar span{display:block;height:100%;background:#2da44e}
label.choice{display:block;margin:.35rem 0}
input[type=text],textarea,select{width:100%;box-sizing:border-box;padding:.5rem;font:inherit}
.actions{display:flex;gap:.5rem;margin-top:1rem}
.actions .next{margin-left:auto}
pre{white-space:pre-wrap;background:#fff;border:1px solid #d0d7de;border-radius:8px;padding:1rem}
.toggle a{margin-right:.75rem}
.toggle a.active{font-weight:700;text-decoration:none}
table{width:100%;border-collapse:collapse}
td,th{text-align:left;padding:.4rem;border-bottom:1px solid #d0d7de}
`

// liveReload reloads the page when the server reports a data change.
const liveReload = `
(function(){
  if (!window.EventSource) return;
  var es = new EventSource("/events");
  es.addEventListener("refresh", function(){
    if (document.activeElement && /INPUT|TEXTAREA|SELECT/.test(document.activeElement.tagName)) return;
    window.location.reload();
  });
})();
`

// Layout wraps body in the shared page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title + " · ContextCrafter")
		h.raw(`</title><style>` + styles + `</style></head><body>`)
		h.raw(`<nav><a class="brand" href="/">ContextCrafter</a><a href="/">Templates</a><a href="/history">History</a></nav><main>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main><script>` + liveReload + `</script></body></html>`)
		return h.err
	})
}

// MessageData describes a short notice page.
type MessageData struct {
	Title    string
	Message  string
	Link     string
	LinkText string
}

// MessagePage renders a notice with an optional follow-up link.
func MessagePage(d MessageData) templ.Component {
	return Layout(d.Title, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="panel"><h1>`)
		h.text(d.Title)
		h.raw(`</h1><p>`)
		h.text(d.Message)
		h.raw(`</p>`)
		if d.Link != "" {
			h.raw(`<p><a`)
			h.attr("href", d.Link)
			h.raw(`>`)
			h.text(d.LinkText)
			h.raw(`</a></p>`)
		}
		h.raw(`</div>`)
		return h.err
	}))
}
