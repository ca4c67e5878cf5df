// Package web provides HTTP handlers for the conversion service.
// This file contains shared utilities and helper functions used across handlers.
package web

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/tabconv/internal/core"
	"github.com/JonMunkholm/tabconv/internal/tabular"
	"github.com/JonMunkholm/tabconv/internal/textio"
	"github.com/JonMunkholm/tabconv/internal/value"
)

// multipartOverhead is the form framing allowed on top of the input limit.
const multipartOverhead = 1 << 20

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseSource reads the per-request comma and strict overrides. Values come
// from the query string, or from form fields when the body is a form.
func parseSource(r *http.Request, name string) (core.Source, error) {
	src := core.Source{Name: name}

	comma, err := tabular.ParseComma(r.FormValue("comma"))
	if err != nil {
		return src, err
	}
	src.Comma = comma

	if s := r.FormValue("strict"); s != "" {
		strict, err := strconv.ParseBool(s)
		if err != nil {
			return src, &tabular.Error{Kind: tabular.KindArityOrType, Msg: fmt.Sprintf("invalid strict value %q", s)}
		}
		src.Strict = &strict
	}
	return src, nil
}

// readInput loads the text to decode. Multipart requests supply a "file"
// part or a "text" field; url-encoded forms a "text" field; anything else is
// the raw body. The text is returned as received; Decode drops a leading BOM.
func (s *Server) readInput(w http.ResponseWriter, r *http.Request) (text, name string, err error) {
	max := s.service.MaxInputSize()
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, max+multipartOverhead)
		if err := r.ParseMultipartForm(max + multipartOverhead); err != nil {
			return "", "", tooLargeOr(err, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		}

		file, header, ferr := r.FormFile("file")
		if ferr == nil {
			defer file.Close()
			data, err := textio.ReadLimited(file, max)
			if err != nil {
				return "", "", err
			}
			if len(data) > 0 {
				return string(data), header.Filename, nil
			}
		} else if !errors.Is(ferr, http.ErrMissingFile) {
			return "", "", fmt.Errorf("%w: %v", core.ErrInvalidInput, ferr)
		}
		return formText(r, max)

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, max+multipartOverhead)
		if err := r.ParseForm(); err != nil {
			return "", "", tooLargeOr(err, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		}
		return formText(r, max)

	default:
		data, err := textio.ReadLimited(r.Body, max)
		if err != nil {
			return "", "", err
		}
		if len(data) == 0 {
			return "", "", core.ErrEmptyInput
		}
		return string(data), "body", nil
	}
}

func formText(r *http.Request, max int64) (string, string, error) {
	text := r.FormValue("text")
	if text == "" {
		return "", "", core.ErrEmptyInput
	}
	if int64(len(text)) > max {
		return "", "", fmt.Errorf("%w: exceeds %d bytes", textio.ErrInputTooLarge, max)
	}
	return text, "form", nil
}

// tooLargeOr maps a MaxBytesReader failure to ErrInputTooLarge.
func tooLargeOr(err, fallback error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: exceeds %d bytes", textio.ErrInputTooLarge, mbe.Limit)
	}
	return fallback
}

// readValue parses a JSON or YAML request body into a value. YAML is chosen
// by a yaml Content-Type; everything else is read as JSON.
func (s *Server) readValue(r *http.Request) (value.Value, error) {
	data, err := textio.ReadLimited(r.Body, s.service.MaxInputSize())
	if err != nil {
		return nil, err
	}
	data = textio.TrimBOM(data)
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, core.ErrEmptyInput
	}

	var v value.Value
	if isYAML(r) {
		v, err = value.ParseYAML(data)
	} else {
		v, err = value.ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	return v, nil
}

func isYAML(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}

// asList requires v to be a list, reporting what was received otherwise.
func asList(v value.Value, what string) (value.List, error) {
	list, ok := v.(value.List)
	if !ok {
		return nil, &tabular.Error{
			Kind: tabular.KindArityOrType,
			Msg:  fmt.Sprintf("%s must be a list, got %s", what, value.KindOf(v)),
		}
	}
	return list, nil
}
