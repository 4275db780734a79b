package citation

import (
	"errors"
	"sync"
	"testing"
)

func bookFields() Fields {
	return Fields{Author: "Smith, Jones", Title: "T", Publisher: "P", Year: "2020"}
}

func websiteFields() Fields {
	return Fields{Title: "T", SiteName: "S", URL: "http://x", AccessDate: "2023-01-01"}
}

func TestTemplatesCoverEveryCombination(t *testing.T) {
	for _, source := range SourceTypes() {
		for _, style := range Styles() {
			if _, ok := templates[templateKey{source, style}]; !ok {
				t.Errorf("No template for %s/%s", source, style)
			}
		}
	}
	if expected := len(SourceTypes()) * len(Styles()); len(templates) != expected {
		t.Errorf("Expected %d templates, got %d", expected, len(templates))
	}
}

func TestBuild_Book(t *testing.T) {
	cases := []struct {
		style    Style
		expected string
	}{
		{StyleAPA, "Smith & Jones (2020). <i>T</i>. P."},
		{StyleMLA, "Smith and Jones. <i>T</i>, P, 2020."},
		{StyleChicago, "Smith, and Jones. 2020. <i>T</i>. P."},
	}

	for _, tc := range cases {
		t.Run(string(tc.style), func(t *testing.T) {
			got, err := Build(SourceBook, tc.style, bookFields())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestBuild_WebsiteWithoutAuthor(t *testing.T) {
	cases := []struct {
		style    Style
		expected string
	}{
		{StyleAPA, "(n.d.). T. <i>S</i>. Retrieved January 1, 2023, from http://x"},
		{StyleMLA, "\"T.\" <i>S</i>, n.d., http://x. Accessed 1 Jan. 2023."},
		{StyleChicago, "\"T.\" S. http://x (accessed January 1, 2023)."},
	}

	for _, tc := range cases {
		t.Run(string(tc.style), func(t *testing.T) {
			got, err := Build(SourceWebsite, tc.style, websiteFields())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestBuild_WebsiteWithAuthor(t *testing.T) {
	fields := websiteFields()
	fields.Author = "Doe, Roe, Poe"

	cases := []struct {
		style    Style
		expected string
	}{
		{StyleAPA, "Doe, Roe & Poe. (n.d.). T. <i>S</i>. Retrieved January 1, 2023, from http://x"},
		{StyleMLA, "Doe et al.. \"T.\" <i>S</i>, n.d., http://x. Accessed 1 Jan. 2023."},
		{StyleChicago, "Doe, Roe, and Poe. \"T.\" S. http://x (accessed January 1, 2023)."},
	}

	for _, tc := range cases {
		t.Run(string(tc.style), func(t *testing.T) {
			got, err := Build(SourceWebsite, tc.style, fields)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestBuild_TrimsFields(t *testing.T) {
	fields := Fields{Author: "  Smith  ", Title: " T ", Publisher: "\tP", Year: "2020 "}
	got, err := Build(SourceBook, StyleAPA, fields)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expected := "Smith (2020). <i>T</i>. P."; got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestBuild_MissingRequiredField(t *testing.T) {
	cases := []struct {
		name     string
		source   SourceType
		fields   Fields
		expected []string
	}{
		{
			name:     "book without author",
			source:   SourceBook,
			fields:   Fields{Author: "", Title: "T", Publisher: "P", Year: "2020"},
			expected: []string{FieldAuthor},
		},
		{
			name:     "book blank after trim",
			source:   SourceBook,
			fields:   Fields{Author: "Smith", Title: "   ", Publisher: "P", Year: "\n"},
			expected: []string{FieldTitle, FieldYear},
		},
		{
			name:     "empty website",
			source:   SourceWebsite,
			fields:   Fields{Author: "Smith"},
			expected: []string{FieldTitle, FieldSiteName, FieldURL, FieldAccessDate},
		},
		{
			name:     "website ignores book fields",
			source:   SourceWebsite,
			fields:   Fields{Title: "T", SiteName: "S", URL: "http://x", Publisher: "P"},
			expected: []string{FieldAccessDate},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Build(tc.source, StyleMLA, tc.fields)
			if got != "" {
				t.Errorf("Expected no citation on failure, got %q", got)
			}
			if !errors.Is(err, ErrMissingRequiredField) {
				t.Fatalf("Expected MissingRequiredField, got %v", err)
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if len(validationErr.Fields) != len(tc.expected) {
				t.Fatalf("Expected fields %q, got %q", tc.expected, validationErr.Fields)
			}
			for i, field := range tc.expected {
				if validationErr.Fields[i] != field {
					t.Errorf("Field %d: expected %q, got %q", i, field, validationErr.Fields[i])
				}
				if !validationErr.HasField(field) {
					t.Errorf("HasField(%q) returned false", field)
				}
			}
		})
	}
}

func TestBuild_UnparsableAccessDate(t *testing.T) {
	fields := websiteFields()
	fields.AccessDate = "not-a-date"

	got, err := Build(SourceWebsite, StyleMLA, fields)
	if got != "" {
		t.Errorf("Expected no citation, got %q", got)
	}
	if !errors.Is(err, ErrUnparsableDate) {
		t.Fatalf("Expected UnparsableDate, got %v", err)
	}
	if errors.Is(err, ErrMissingRequiredField) {
		t.Error("UnparsableDate must not match MissingRequiredField")
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) && !validationErr.HasField(FieldAccessDate) {
		t.Errorf("Expected accessDate in fields, got %q", validationErr.Fields)
	}
}

func TestBuild_UnknownStyleOrSource(t *testing.T) {
	if _, err := Build(SourceBook, Style("ieee"), bookFields()); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("Expected ErrUnknownStyle, got %v", err)
	}
	if _, err := Build(SourceType("journal"), StyleAPA, bookFields()); !errors.Is(err, ErrUnknownSourceType) {
		t.Errorf("Expected ErrUnknownSourceType, got %v", err)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	first, err := Build(SourceBook, StyleChicago, bookFields())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Build(SourceBook, StyleChicago, bookFields())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical output, got %q and %q", first, second)
	}
}

func TestBuild_ConcurrentCallers(t *testing.T) {
	expected, err := Build(SourceWebsite, StyleAPA, websiteFields())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Build(SourceWebsite, StyleAPA, websiteFields())
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != expected {
			t.Errorf("Call %d: expected %q, got %q", i, expected, got)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Kind: KindMissingRequiredField, Source: SourceBook, Fields: []string{FieldAuthor, FieldYear}}
	if expected := "missing required book field(s): author, year"; err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}
