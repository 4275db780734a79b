package citation

import (
	"strings"

	"golang.org/x/net/html"
)

// Segment is a run of citation text that is either emphasized or plain.
type Segment struct {
	Text   string
	Italic bool
}

// Segments splits a built citation into plain and italic runs so that
// renderers other than HTML can present the emphasis. Text inside <i>
// elements is italic; every other tag is dropped and character references
// are decoded, so the segments read like the HTML's text content. An
// unterminated <i> emphasizes the rest of the string.
func Segments(citation string) []Segment {
	var segments []Segment
	depth := 0

	z := html.NewTokenizer(strings.NewReader(citation))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return segments

		case html.TextToken:
			text := string(z.Text())
			if text == "" {
				continue
			}
			italic := depth > 0
			if n := len(segments); n > 0 && segments[n-1].Italic == italic {
				segments[n-1].Text += text
				continue
			}
			segments = append(segments, Segment{Text: text, Italic: italic})

		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "i" {
				depth++
			}

		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "i" && depth > 0 {
				depth--
			}
		}
	}
}

// StripMarkup returns the text content of citation: tags removed and
// entities decoded.
func StripMarkup(citation string) string {
	var b strings.Builder
	for _, segment := range Segments(citation) {
		b.WriteString(segment.Text)
	}
	return b.String()
}
