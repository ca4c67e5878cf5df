package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/tabconv/internal/value"
	"github.com/JonMunkholm/tabconv/internal/web/templates"
)

// DefaultPreviewRows is how many records the preview table shows.
const DefaultPreviewRows = 100

// DecodeResponse is the JSON body returned by /api/decode.
type DecodeResponse struct {
	ID       string     `json:"id"`
	Columns  []string   `json:"columns"`
	Rows     int        `json:"rows"`
	Records  value.List `json:"records"`
	Duration string     `json:"duration"`
}

// CallResponse is the JSON body returned by /api/call/{name}.
type CallResponse struct {
	Function string      `json:"function"`
	Result   value.Value `json:"result"`
}

// handleDecode parses delimited text into records.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	text, name, err := s.readInput(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	src, err := parseSource(r, name)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	res, err := s.service.Decode(WithRequestMetadata(r.Context(), r), text, src)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	columns := res.Columns
	if columns == nil {
		columns = []string{}
	}
	writeJSON(w, r, http.StatusOK, DecodeResponse{
		ID:       res.ID.String(),
		Columns:  columns,
		Rows:     len(res.Records),
		Records:  value.TableFromRecords(res.Records),
		Duration: res.Duration.String(),
	})
}

// handleEncode renders a JSON (or YAML) array of objects as delimited text.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	v, err := s.readValue(r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	rows, err := asList(v, "encode body")
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	src, err := parseSource(r, "body")
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	res, err := s.service.Encode(WithRequestMetadata(r.Context(), r), rows, src)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("X-Conversion-ID", res.ID.String())
	w.Header().Set("X-Row-Count", strconv.Itoa(res.Rows))
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="export.csv"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Text))
}

// handlePreview decodes delimited text and renders the first rows as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	text, name, err := s.readInput(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	src, err := parseSource(r, name)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	res, err := s.service.Decode(WithRequestMetadata(r.Context(), r), text, src)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	limit := parseIntParam(r, "limit", DefaultPreviewRows)
	shown := res.Records
	if len(shown) > limit {
		shown = shown[:limit]
	}

	renderHTML(w, r, http.StatusOK, templates.PreviewTable(templates.PreviewParams{
		ConversionID: res.ID.String(),
		Columns:      res.Columns,
		Records:      shown,
		Total:        len(res.Records),
	}))
}

// handleCall invokes a host function with a JSON array of arguments.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	v, err := s.readValue(r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	args, err := asList(v, "call arguments")
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	out, err := s.service.Call(WithRequestMetadata(r.Context(), r), name, args)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, CallResponse{Function: name, Result: out})
}

// handleConversionStatus returns the current state of the conversion limiter.
// Used for monitoring and to check if the system can accept more work.
func (s *Server) handleConversionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.LimiterStatus())
}
