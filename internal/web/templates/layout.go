// Package templates holds the HTML components served by the web package.
//
// Components are plain templ.Component values. Every dynamic string goes
// through templ.EscapeString before it is written.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// HTMXSource is the script the layout loads for partial page updates.
const HTMXSource = "https://unpkg.com/htmx.org@1.9.12"

// Page wraps body in the document shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>`)
		b.WriteString(templ.EscapeString(title))
		b.WriteString(`</title><script src="`)
		b.WriteString(HTMXSource)
		b.WriteString(`"></script>`)
		b.WriteString(`<style>` + pageStyle + `</style></head><body><main>`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}
main{max-width:72rem;margin:0 auto}
table{border-collapse:collapse;width:100%;margin:1rem 0;font-size:.875rem}
th,td{border:1px solid #d1d5db;padding:.25rem .5rem;text-align:left;vertical-align:top}
th{background:#f3f4f6}
td.missing{background:#fafafa;color:#9ca3af}
.alert{border:1px solid #fca5a5;background:#fef2f2;padding:.75rem;border-radius:.25rem}
.muted{color:#6b7280}
textarea{width:100%;font-family:monospace}`

// render writes a fully built fragment.
func render(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	return err
}

// cell writes one escaped table cell of the given tag.
func cell(b *strings.Builder, tag, text string) {
	b.WriteString("<" + tag + ">")
	b.WriteString(templ.EscapeString(text))
	b.WriteString("</" + tag + ">")
}
