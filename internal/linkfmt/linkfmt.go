// Package linkfmt renders upload results into the output link formats.
package linkfmt

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Style selects the rendered link template.
type Style string

const (
	StyleBBCode         Style = "b" // [img]...[/img]
	StyleDirect         Style = "d" // bare URL
	StyleLinkedThumb    Style = "h" // gallery link wrapping a thumbnail
	StyleBBCodeNoMarkup Style = "i" // [imgnm]...[/imgnm]
	StyleMedium         Style = "m" // medium-suffixed URL
	StyleThumb          Style = "t" // thumbnail-suffixed URL
	StyleLinkedMedium   Style = "u" // gallery link wrapping a medium image
)

// GalleryURL is the viewer page prefix for uploaded images.
const GalleryURL = "https://hamster.is/image/"

// Path suffixes the hosting API serves derived renditions under.
const (
	SuffixThumb  = ".th"
	SuffixMedium = ".md"
)

// UnknownStyleError is returned for a style outside the closed set.
type UnknownStyleError struct {
	Value string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("unknown link format %q (valid: b, d, h, i, m, t, u)", e.Value)
}

// ParseStyle validates a raw flag value against the style set.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleBBCode, StyleDirect, StyleLinkedThumb, StyleBBCodeNoMarkup,
		StyleMedium, StyleThumb, StyleLinkedMedium:
		return Style(s), nil
	}
	return "", &UnknownStyleError{Value: s}
}

// Format renders the (link, imageID) pair returned by the upload API
// into the selected style. Pure function, no side effects.
func Format(style Style, link, imageID string) (string, error) {
	switch style {
	case StyleBBCode:
		return fmt.Sprintf("[img]%s[/img]", link), nil
	case StyleDirect:
		return link, nil
	case StyleLinkedThumb:
		return fmt.Sprintf("[url=%s%s][img]%s[/img][/url]", GalleryURL, imageID, WithSuffix(link, SuffixThumb)), nil
	case StyleBBCodeNoMarkup:
		return fmt.Sprintf("[imgnm]%s[/imgnm]", link), nil
	case StyleMedium:
		return WithSuffix(link, SuffixMedium), nil
	case StyleThumb:
		return WithSuffix(link, SuffixThumb), nil
	case StyleLinkedMedium:
		return fmt.Sprintf("[url=%s%s][img]%s[/img][/url]", GalleryURL, imageID, WithSuffix(link, SuffixMedium)), nil
	}
	return "", &UnknownStyleError{Value: string(style)}
}

// WithSuffix inserts suffix before the final extension of the URL path,
// preserving query and fragment: name.ext becomes name<suffix>.ext.
// Unparseable URLs are returned unchanged.
func WithSuffix(rawURL, suffix string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	ext := path.Ext(u.Path)
	u.Path = strings.TrimSuffix(u.Path, ext) + suffix + ext
	return u.String()
}
