package linkfmt

import (
	"errors"
	"testing"
)

const (
	testLink = "https://hamster.is/i/abc.jpg"
	testID   = "xyz"
)

func TestParseStyle(t *testing.T) {
	for _, valid := range []string{"b", "d", "h", "i", "m", "t", "u"} {
		if _, err := ParseStyle(valid); err != nil {
			t.Errorf("ParseStyle(%q) returned error: %v", valid, err)
		}
	}

	_, err := ParseStyle("z")
	var unknown *UnknownStyleError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStyleError, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		style Style
		want  string
	}{
		{StyleDirect, "https://hamster.is/i/abc.jpg"},
		{StyleBBCode, "[img]https://hamster.is/i/abc.jpg[/img]"},
		{StyleBBCodeNoMarkup, "[imgnm]https://hamster.is/i/abc.jpg[/imgnm]"},
		{StyleThumb, "https://hamster.is/i/abc.th.jpg"},
		{StyleMedium, "https://hamster.is/i/abc.md.jpg"},
		{StyleLinkedThumb, "[url=https://hamster.is/image/xyz][img]https://hamster.is/i/abc.th.jpg[/img][/url]"},
		{StyleLinkedMedium, "[url=https://hamster.is/image/xyz][img]https://hamster.is/i/abc.md.jpg[/img][/url]"},
	}

	for _, tc := range cases {
		got, err := Format(tc.style, testLink, testID)
		if err != nil {
			t.Errorf("Format(%q) returned error: %v", tc.style, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Format(%q):\n got  %s\n want %s", tc.style, got, tc.want)
		}
	}
}

func TestFormatUnknownStyle(t *testing.T) {
	_, err := Format(Style("x"), testLink, testID)
	var unknown *UnknownStyleError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStyleError, got %v", err)
	}
}

func TestWithSuffixPreservesQueryAndFragment(t *testing.T) {
	got := WithSuffix("https://hamster.is/i/abc.jpg?size=1#frag", ".th")
	want := "https://hamster.is/i/abc.th.jpg?size=1#frag"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestWithSuffixStacksDeterministically(t *testing.T) {
	got := WithSuffix(WithSuffix(testLink, ".th"), ".md")
	want := "https://hamster.is/i/abc.th.md.jpg"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestWithSuffixNoExtension(t *testing.T) {
	got := WithSuffix("https://hamster.is/i/abc", ".th")
	want := "https://hamster.is/i/abc.th"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
