package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/value"
)

// PreviewParams is the input of PreviewTable.
type PreviewParams struct {
	ConversionID string
	Columns      []string
	Records      []*value.Record
	Total        int // records decoded; Records may hold fewer
}

// PreviewTable renders decoded records as an HTML table. Keys a short row
// does not carry are shown as empty, greyed cells.
func PreviewTable(p PreviewParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="preview">`)
		fmt.Fprintf(&b, `<p class="muted">%d rows, %d columns`, p.Total, len(p.Columns))
		if len(p.Records) < p.Total {
			fmt.Fprintf(&b, `, showing the first %d`, len(p.Records))
		}
		if p.ConversionID != "" {
			b.WriteString(` &middot; `)
			b.WriteString(templ.EscapeString(p.ConversionID))
		}
		b.WriteString(`</p>`)

		if len(p.Columns) == 0 {
			b.WriteString(`<p>No rows.</p></section>`)
			return render(w, &b)
		}

		b.WriteString(`<table><thead><tr>`)
		for _, c := range p.Columns {
			cell(&b, "th", c)
		}
		b.WriteString(`</tr></thead><tbody>`)
		for _, rec := range p.Records {
			b.WriteString(`<tr>`)
			for _, c := range p.Columns {
				v, ok := rec.Get(c)
				if !ok {
					b.WriteString(`<td class="missing"></td>`)
					continue
				}
				cell(&b, "td", tabular.Render(v))
			}
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table></section>`)
		return render(w, &b)
	})
}
