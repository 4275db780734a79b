package citation

import "fmt"

// templateKey selects one row of the template table.
type templateKey struct {
	source SourceType
	style  Style
}

// parts is the fully formatted input of a template.
type parts struct {
	fields     Fields
	authors    string // formatted author phrase, may be empty for websites
	accessDate string // formatted access date, websites only
}

// websiteAuthor returns the author clause of a website citation: the author
// phrase plus a period and a trailing space, or nothing at all.
func (p parts) websiteAuthor() string {
	if p.authors == "" {
		return ""
	}
	return p.authors + ". "
}

func emphasize(text string) string {
	return "<i>" + text + "</i>"
}

var templates = map[templateKey]func(parts) string{
	{SourceBook, StyleAPA}: func(p parts) string {
		return fmt.Sprintf("%s (%s). %s. %s.", p.authors, p.fields.Year, emphasize(p.fields.Title), p.fields.Publisher)
	},
	{SourceBook, StyleMLA}: func(p parts) string {
		return fmt.Sprintf("%s. %s, %s, %s.", p.authors, emphasize(p.fields.Title), p.fields.Publisher, p.fields.Year)
	},
	{SourceBook, StyleChicago}: func(p parts) string {
		return fmt.Sprintf("%s. %s. %s. %s.", p.authors, p.fields.Year, emphasize(p.fields.Title), p.fields.Publisher)
	},
	{SourceWebsite, StyleAPA}: func(p parts) string {
		return fmt.Sprintf("%s(n.d.). %s. %s. Retrieved %s, from %s",
			p.websiteAuthor(), p.fields.Title, emphasize(p.fields.SiteName), p.accessDate, p.fields.URL)
	},
	{SourceWebsite, StyleMLA}: func(p parts) string {
		return fmt.Sprintf("%s\"%s.\" %s, n.d., %s. Accessed %s.",
			p.websiteAuthor(), p.fields.Title, emphasize(p.fields.SiteName), p.fields.URL, p.accessDate)
	},
	{SourceWebsite, StyleChicago}: func(p parts) string {
		return fmt.Sprintf("%s\"%s.\" %s. %s (accessed %s).",
			p.websiteAuthor(), p.fields.Title, p.fields.SiteName, p.fields.URL, p.accessDate)
	},
}

// Build validates fields for source and assembles the citation in style.
//
// Book citations require author, title, publisher and year; website
// citations require title, siteName, url and accessDate, with author
// optional. Blank fields fail with a *ValidationError of kind
// KindMissingRequiredField naming every missing field. A website access
// date that is not a valid YYYY-MM-DD date fails with KindUnparsableDate.
// No partial citation is ever returned alongside an error.
//
// Title and site names are wrapped in <i>...</i> where the style sets them
// in italics.
func Build(source SourceType, style Style, fields Fields) (string, error) {
	if !style.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	render, ok := templates[templateKey{source, style}]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSourceType, source)
	}

	fields = fields.Trimmed()
	if missing := MissingFields(source, fields); len(missing) > 0 {
		return "", &ValidationError{Kind: KindMissingRequiredField, Source: source, Fields: missing}
	}

	p := parts{fields: fields, authors: FormatAuthors(fields.Author, style)}
	if source == SourceWebsite {
		p.accessDate = FormatDate(fields.AccessDate, style)
		if p.accessDate == "" {
			return "", &ValidationError{Kind: KindUnparsableDate, Source: source, Fields: []string{FieldAccessDate}}
		}
	}

	return render(p), nil
}
