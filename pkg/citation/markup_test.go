package citation

import "testing"

func TestSegments(t *testing.T) {
	got := Segments("Smith (2020). <i>T</i>. P.")
	expected := []Segment{
		{Text: "Smith (2020). "},
		{Text: "T", Italic: true},
		{Text: ". P."},
	}

	if len(got) != len(expected) {
		t.Fatalf("Expected %d segments, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Segment %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}

func TestSegments_EdgeCases(t *testing.T) {
	if got := Segments(""); len(got) != 0 {
		t.Errorf("Expected no segments, got %+v", got)
	}

	got := Segments("<i>open")
	if len(got) != 1 || !got[0].Italic || got[0].Text != "open" {
		t.Errorf("Expected one italic segment, got %+v", got)
	}
}

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Smith & Jones (2020). <i>T</i>. P.", "Smith & Jones (2020). T. P."},
		{"\"T.\" S. http://x (accessed January 1, 2023).", "\"T.\" S. http://x (accessed January 1, 2023)."},
		{"<i>A</i><i>B</i>", "AB"},
	}

	for _, tc := range cases {
		if got := StripMarkup(tc.input); got != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, got)
		}
	}
}

func TestStripMarkup_CallerMarkup(t *testing.T) {
	text, err := Build(SourceBook, StyleAPA, Fields{
		Author:    "Smith",
		Title:     "Tom &amp; Jerry <b>Annotated</b>",
		Publisher: "P",
		Year:      "2020",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got, expected := StripMarkup(text), "Smith (2020). Tom & Jerry Annotated. P."; got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestSegments_NestedTagsKeepEmphasis(t *testing.T) {
	got := Segments("A <i>Tom &amp; <b>Jerry</b></i> B")
	expected := []Segment{
		{Text: "A "},
		{Text: "Tom & Jerry", Italic: true},
		{Text: " B"},
	}

	if len(got) != len(expected) {
		t.Fatalf("Expected %d segments, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Segment %d: expected %+v, got %+v", i, expected[i], got[i])
		}
	}
}
