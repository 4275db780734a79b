package citation

import "strings"

// Field names as reported in validation errors.
const (
	FieldAuthor     = "author"
	FieldTitle      = "title"
	FieldPublisher  = "publisher"
	FieldYear       = "year"
	FieldSiteName   = "siteName"
	FieldURL        = "url"
	FieldAccessDate = "accessDate"
)

// Fields holds the raw text of a reference as entered by the user.
// Values are opaque: apart from trimming they are inserted verbatim.
// Publisher and Year apply to books; SiteName, URL and AccessDate to
// websites. Author is required for books and optional for websites.
type Fields struct {
	Author     string `yaml:"author,omitempty" json:"author,omitempty"`
	Title      string `yaml:"title,omitempty" json:"title,omitempty"`
	Publisher  string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	Year       string `yaml:"year,omitempty" json:"year,omitempty"`
	SiteName   string `yaml:"site_name,omitempty" json:"site_name,omitempty"`
	URL        string `yaml:"url,omitempty" json:"url,omitempty"`
	AccessDate string `yaml:"access_date,omitempty" json:"access_date,omitempty"`
}

// Trimmed returns a copy of f with surrounding whitespace removed from every value.
func (f Fields) Trimmed() Fields {
	return Fields{
		Author:     strings.TrimSpace(f.Author),
		Title:      strings.TrimSpace(f.Title),
		Publisher:  strings.TrimSpace(f.Publisher),
		Year:       strings.TrimSpace(f.Year),
		SiteName:   strings.TrimSpace(f.SiteName),
		URL:        strings.TrimSpace(f.URL),
		AccessDate: strings.TrimSpace(f.AccessDate),
	}
}

// Value returns the field named by one of the Field* constants.
func (f Fields) Value(name string) string {
	switch name {
	case FieldAuthor:
		return f.Author
	case FieldTitle:
		return f.Title
	case FieldPublisher:
		return f.Publisher
	case FieldYear:
		return f.Year
	case FieldSiteName:
		return f.SiteName
	case FieldURL:
		return f.URL
	case FieldAccessDate:
		return f.AccessDate
	default:
		return ""
	}
}

// RequiredFields returns the names of the fields that must be non-blank
// for t, in reporting order.
func (t SourceType) RequiredFields() []string {
	switch t {
	case SourceBook:
		return []string{FieldAuthor, FieldTitle, FieldPublisher, FieldYear}
	case SourceWebsite:
		return []string{FieldTitle, FieldSiteName, FieldURL, FieldAccessDate}
	default:
		return nil
	}
}

// MissingFields returns the required fields of t that are blank in f.
func MissingFields(t SourceType, f Fields) []string {
	var missing []string
	for _, name := range t.RequiredFields() {
		if strings.TrimSpace(f.Value(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
