// Package citation formats bibliographic references (books and websites)
// into APA, MLA, or Chicago style.
//
// Every entry point is a pure function of its arguments: callers pass the
// current style and source type on each call and receive either the
// formatted string or a typed error. The package holds no mutable state and
// is safe for concurrent use.
package citation

import (
	"errors"
	"fmt"
	"strings"
)

// Style selects a citation convention.
type Style string

const (
	StyleAPA     Style = "apa"
	StyleMLA     Style = "mla"
	StyleChicago Style = "chicago"
)

// Styles returns every supported style in display order.
func Styles() []Style {
	return []Style{StyleAPA, StyleMLA, StyleChicago}
}

// Valid reports whether s is one of the supported styles.
func (s Style) Valid() bool {
	switch s {
	case StyleAPA, StyleMLA, StyleChicago:
		return true
	default:
		return false
	}
}

// Label returns the upper-case display tag, e.g. "APA".
func (s Style) Label() string {
	return strings.ToUpper(string(s))
}

// Heading returns the caption shown above a rendered citation,
// e.g. "APA Citation:".
func Heading(style Style) string {
	return style.Label() + " Citation:"
}

// SourceType classifies the referenced material. It determines the
// required fields and the template used.
type SourceType string

const (
	SourceBook    SourceType = "book"
	SourceWebsite SourceType = "website"
)

// SourceTypes returns every supported source type.
func SourceTypes() []SourceType {
	return []SourceType{SourceBook, SourceWebsite}
}

// Valid reports whether t is one of the supported source types.
func (t SourceType) Valid() bool {
	switch t {
	case SourceBook, SourceWebsite:
		return true
	default:
		return false
	}
}

var (
	// ErrUnknownStyle is returned for a style name outside APA, MLA and Chicago.
	ErrUnknownStyle = errors.New("unknown citation style")

	// ErrUnknownSourceType is returned for a source type other than book or website.
	ErrUnknownSourceType = errors.New("unknown source type")
)

// ParseStyle converts a case-insensitive style name into a Style.
func ParseStyle(name string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(name)))
	if !style.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return style, nil
}

// ParseSourceType converts a case-insensitive source type name into a SourceType.
func ParseSourceType(name string) (SourceType, error) {
	sourceType := SourceType(strings.ToLower(strings.TrimSpace(name)))
	if !sourceType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSourceType, name)
	}
	return sourceType, nil
}
