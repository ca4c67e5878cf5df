package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="alert" role="alert"><strong>`)
		b.WriteString(templ.EscapeString(message))
		b.WriteString(`</strong>`)
		if action != "" {
			b.WriteString(` <span>`)
			b.WriteString(templ.EscapeString(action))
			b.WriteString(`</span>`)
		}
		if code != "" {
			b.WriteString(` <span class="muted">(Code: `)
			b.WriteString(templ.EscapeString(code))
			b.WriteString(`)</span>`)
		}
		b.WriteString(`</div>`)
		return render(w, &b)
	})
}
