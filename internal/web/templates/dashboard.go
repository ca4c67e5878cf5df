package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/tabconv/internal/history"
)

// FunctionInfo describes one host function in the functions list.
type FunctionInfo struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc"`
}

// DashboardParams is the input of Dashboard.
type DashboardParams struct {
	Functions     []FunctionInfo
	History       []history.Entry
	Active        int
	MaxConcurrent int
	MaxInputSize  int64
}

// Dashboard renders the landing page: a preview form, the host functions and
// recent conversions.
func Dashboard(p DashboardParams) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h1>tabconv</h1>`)
		fmt.Fprintf(&b, `<p class="muted">%d of %d conversion slots in use. Inputs up to %d bytes.</p>`,
			p.Active, p.MaxConcurrent, p.MaxInputSize)

		b.WriteString(`<form hx-post="/api/preview" hx-target="#preview" hx-swap="outerHTML" hx-encoding="multipart/form-data">`)
		b.WriteString(`<p><input type="file" name="file" accept=".csv,.tsv,.txt,text/csv"></p>`)
		b.WriteString(`<p><textarea name="text" rows="8" placeholder="or paste delimited text"></textarea></p>`)
		b.WriteString(`<p><label>Delimiter <input name="comma" size="3" placeholder=","></label> `)
		b.WriteString(`<label><input type="checkbox" name="strict" value="true"> Strict</label> `)
		b.WriteString(`<button type="submit">Preview</button></p></form>`)
		b.WriteString(`<section id="preview"></section>`)

		b.WriteString(`<h2>Functions</h2><table><thead><tr><th>Signature</th><th>Description</th></tr></thead><tbody>`)
		for _, f := range p.Functions {
			b.WriteString(`<tr>`)
			cell(&b, "td", f.Signature)
			cell(&b, "td", f.Doc)
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<h2>Recent conversions</h2>`)
		if err := render(w, &b); err != nil {
			return err
		}
		return HistoryTable(p.History).Render(ctx, w)
	})
	return Page("tabconv", body)
}
