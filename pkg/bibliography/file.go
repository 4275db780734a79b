// Package bibliography renders whole reference lists stored as YAML files
// and keeps them rendered as the files change.
package bibliography

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CutieJi/citation-generator/pkg/citation"
)

// Entry is one reference in a bibliography file.
type Entry struct {
	// ID labels the entry in output and logs. Defaults to "entry-<n>".
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	// Type is the source type (book or website).
	Type citation.SourceType `yaml:"type" json:"type"`

	// Style overrides the file's default style for this entry.
	Style citation.Style `yaml:"style,omitempty" json:"style,omitempty"`

	citation.Fields `yaml:",inline"`
}

// File is a parsed bibliography.
type File struct {
	// Style is the default style for entries that do not set one.
	Style citation.Style `yaml:"style,omitempty" json:"style,omitempty"`

	Entries []Entry `yaml:"entries" json:"entries"`
}

// Load reads and parses a bibliography file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bibliography: %w", err)
	}
	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Parse decodes a bibliography from YAML. Entry fields are not checked
// here; missing fields are reported per entry when rendering. Unknown
// types and styles are rejected up front.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bibliography: %w", err)
	}

	if file.Style != "" && !file.Style.Valid() {
		return nil, fmt.Errorf("%w: %q", citation.ErrUnknownStyle, file.Style)
	}
	for i := range file.Entries {
		entry := &file.Entries[i]
		if entry.ID == "" {
			entry.ID = fmt.Sprintf("entry-%d", i+1)
		}
		if entry.Type == "" {
			return nil, fmt.Errorf("entry %s: type is required", entry.ID)
		}
		if !entry.Type.Valid() {
			return nil, fmt.Errorf("entry %s: %w: %q", entry.ID, citation.ErrUnknownSourceType, entry.Type)
		}
		if entry.Style != "" && !entry.Style.Valid() {
			return nil, fmt.Errorf("entry %s: %w: %q", entry.ID, citation.ErrUnknownStyle, entry.Style)
		}
	}
	return &file, nil
}

// StyleFor resolves the style of entry: override, then the entry's own
// style, then the file default, then fallback.
func (f *File) StyleFor(entry Entry, override, fallback citation.Style) citation.Style {
	switch {
	case override != "":
		return override
	case entry.Style != "":
		return entry.Style
	case f.Style != "":
		return f.Style
	default:
		return fallback
	}
}
