package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/tabconv/internal/history"
	"github.com/JonMunkholm/tabconv/internal/value"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestErrorAlert(t *testing.T) {
	out := renderString(t, ErrorAlert("Bad <input>", "Fix it", "CSV001"))

	if !strings.Contains(out, "Bad &lt;input&gt;") {
		t.Errorf("message not escaped: %s", out)
	}
	if !strings.Contains(out, "(Code: CSV001)") {
		t.Errorf("code missing: %s", out)
	}
}

func TestPreviewTable(t *testing.T) {
	out := renderString(t, PreviewTable(PreviewParams{
		Columns: []string{"a", "b"},
		Records: []*value.Record{
			value.RecordOf("a", "<1>", "b", "2"),
			value.RecordOf("a", "3"),
		},
		Total: 5,
	}))

	for _, want := range []string{
		"<th>a</th><th>b</th>",
		"<td>&lt;1&gt;</td><td>2</td>",
		`<td>3</td><td class="missing"></td>`,
		"5 rows, 2 columns, showing the first 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPreviewTable_Empty(t *testing.T) {
	out := renderString(t, PreviewTable(PreviewParams{}))
	if !strings.Contains(out, "No rows.") {
		t.Errorf("output = %s", out)
	}
}

func TestHistoryTable(t *testing.T) {
	entries := []history.Entry{
		{Operation: history.OpCall, Function: "csv_parse", Rows: 2, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{Operation: history.OpDecode, ErrorCode: "CSV001", ErrorMessage: `bare " in non-quoted-field`},
	}
	out := renderString(t, HistoryTable(entries))

	for _, want := range []string{
		"2026-01-02 03:04:05",
		"call csv_parse",
		"<td>ok</td>",
		"CSV001: bare &#34; in non-quoted-field",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if out := renderString(t, HistoryTable(nil)); !strings.Contains(out, "No conversions yet.") {
		t.Errorf("empty output = %s", out)
	}
}

func TestDashboard(t *testing.T) {
	out := renderString(t, Dashboard(DashboardParams{
		Functions:     []FunctionInfo{{Name: "csv_parse", Signature: "csv_parse(string) -> list", Doc: "Parse"}},
		Active:        1,
		MaxConcurrent: 8,
		MaxInputSize:  1024,
	}))

	for _, want := range []string{
		"<!DOCTYPE html>",
		"csv_parse(string) -&gt; list",
		"1 of 8 conversion slots in use",
		`hx-post="/api/preview"`,
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
