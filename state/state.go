// Package state locates and parses the serialized state blob that the
// upstream page's client-side framework injects into its markup.
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Marker introduces the serialized state literal inside a script tag.
const Marker = "window.__INITIAL_STATE__"

// ErrNotFound means the markup carries no state marker at all.
var ErrNotFound = errors.New("embedded state marker not found")

// ParseError means the marker was present but the literal could not be
// isolated or was not valid JSON.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "embedded state parse failed: " + e.Reason
}

// Locate finds the state literal in raw markup and parses it. The returned
// Result's Raw field is exactly the substring that was scanned, so callers
// can round-trip it.
func Locate(markup string) (gjson.Result, error) {
	idx := strings.Index(markup, Marker)
	if idx < 0 {
		return gjson.Result{}, ErrNotFound
	}

	rest := markup[idx+len(Marker):]
	open := strings.IndexByte(rest, '{')
	if open < 0 {
		return gjson.Result{}, &ParseError{Reason: "no object literal after marker"}
	}

	literal, err := scanBalanced(rest[open:])
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.Valid(literal) {
		return gjson.Result{}, &ParseError{Reason: "extracted literal is not valid JSON"}
	}
	return gjson.Parse(literal), nil
}

// scanBalanced returns the prefix of s spanning one balanced object literal.
// The literal may contain nested braces and escaped quotes, so the scan
// tracks string and escape state byte by byte.
func scanBalanced(s string) (string, error) {
	if len(s) == 0 || s[0] != '{' {
		return "", &ParseError{Reason: "literal does not start with an object"}
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], nil
			}
		}
	}
	return "", &ParseError{Reason: fmt.Sprintf("no matching close brace in %d bytes", len(s))}
}
