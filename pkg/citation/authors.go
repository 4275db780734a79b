package citation

import "strings"

const etAl = " et al."

// authorRule describes how a style joins a multi-author list.
type authorRule struct {
	maxListed int    // longer lists collapse to "First et al."
	separator string // between all but the last two names
	final     string // before the last name
}

var authorRules = map[Style]authorRule{
	StyleAPA:     {maxListed: 20, separator: ", ", final: " & "},
	StyleMLA:     {maxListed: 2, separator: ", ", final: " and "},
	StyleChicago: {maxListed: 10, separator: ", ", final: ", and "},
}

// SplitAuthors splits a comma-separated author string and trims each name.
// Order and duplicates are kept. Empty segments are kept as well, so
// "Smith,,Jones" yields three names, the middle one empty. A blank input
// yields no names.
func SplitAuthors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	names := strings.Split(raw, ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}
	return names
}

// FormatAuthors turns a comma-separated author string into the phrase
// style uses in a reference list:
//
//	APA      "A, B & C"        more than 20 names: "A et al."
//	MLA      "A and B"         more than 2 names:  "A et al."
//	Chicago  "A, B, and C"     more than 10 names: "A et al."
//
// A single name is returned unchanged and a blank input returns "".
func FormatAuthors(raw string, style Style) string {
	return JoinAuthors(SplitAuthors(raw), style)
}

// JoinAuthors applies style's joining and truncation rule to names.
func JoinAuthors(names []string, style Style) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}

	rule, ok := authorRules[style]
	if !ok {
		return strings.Join(names, ", ")
	}
	if len(names) > rule.maxListed {
		return names[0] + etAl
	}

	last := len(names) - 1
	return strings.Join(names[:last], rule.separator) + rule.final + names[last]
}
