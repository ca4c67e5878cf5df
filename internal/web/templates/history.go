package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/tabconv/internal/history"
)

// HistoryTable renders recent conversions, newest first.
func HistoryTable(entries []history.Entry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="history">`)
		if len(entries) == 0 {
			b.WriteString(`<p class="muted">No conversions yet.</p></section>`)
			return render(w, &b)
		}

		b.WriteString(`<table><thead><tr><th>When</th><th>Operation</th><th>Rows</th><th>Columns</th><th>Bytes in</th><th>Bytes out</th><th>Duration</th><th>Result</th></tr></thead><tbody>`)
		for _, e := range entries {
			b.WriteString(`<tr>`)
			cell(&b, "td", e.CreatedAt.Format("2006-01-02 15:04:05"))
			op := string(e.Operation)
			if e.Function != "" {
				op += " " + e.Function
			}
			cell(&b, "td", op)
			cell(&b, "td", strconv.Itoa(e.Rows))
			cell(&b, "td", strconv.Itoa(e.Columns))
			cell(&b, "td", strconv.FormatInt(e.BytesIn, 10))
			cell(&b, "td", strconv.FormatInt(e.BytesOut, 10))
			cell(&b, "td", e.Duration.String())
			if e.Succeeded() {
				cell(&b, "td", "ok")
			} else {
				cell(&b, "td", e.ErrorCode+": "+e.ErrorMessage)
			}
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table></section>`)
		return render(w, &b)
	})
}
