package crawler

import (
	"fmt"
	"regexp"
	"strings"
)

// Layout names the role of each line of a card's text. Lines at any other position are
// boilerplate (whitespace, labels, section text) and are discarded.
type Layout struct {
	Segments    int  // expected number of lines
	CodeName    int  // "Category CODE" or "CODE Name" line
	Description int
	Dimensions  int
	AllowExtra  bool // accept more than Segments lines, ignoring the tail
}

// DefaultLayout matches the listing cards of atrezzovazquez.es.
func DefaultLayout() Layout {
	return Layout{
		Segments:    17,
		CodeName:    5,
		Description: 8,
		Dimensions:  11,
	}
}

func (l Layout) Validate() error {
	for _, idx := range []int{l.CodeName, l.Description, l.Dimensions} {
		if idx < 0 || idx >= l.Segments {
			return fmt.Errorf("%w: position %d outside %d segments", ErrInvalidLayout, idx, l.Segments)
		}
	}
	return nil
}

// Fields are the named values taken from one card's text.
type Fields struct {
	Category    string
	Code        string
	Name        string
	Description string
	Dimensions  string
}

// Split breaks raw card text into lines and maps them to fields by role. A line count that
// does not fit the layout is a *LayoutMismatchError with Card left at 0.
func (l Layout) Split(raw string) (Fields, error) {
	if err := l.Validate(); err != nil {
		return Fields{}, err
	}

	segs := strings.Split(raw, "\n")
	for i, s := range segs {
		segs[i] = strings.TrimSuffix(s, "\r")
	}

	if len(segs) != l.Segments && !(l.AllowExtra && len(segs) > l.Segments) {
		return Fields{}, &LayoutMismatchError{Got: len(segs), Want: l.Segments}
	}

	code := SplitCode(segs[l.CodeName])
	f := Fields{
		Category:    code.Prefix,
		Code:        code.Code,
		Name:        code.Name,
		Description: strings.TrimSpace(segs[l.Description]),
		Dimensions:  strings.TrimSpace(segs[l.Dimensions]),
	}
	// The listing usually reads "Category CODE" with nothing after the code; the code is
	// then the product's name.
	if f.Name == "" {
		f.Name = f.Code
	}
	return f, nil
}

var productCodeRe = regexp.MustCompile(`[A-Z]*\d{1,3}`)

// CodeSplit is a line cut around its first product code.
type CodeSplit struct {
	Prefix  string
	Code    string
	Name    string
	Matched bool
}

// SplitCode isolates the first product code (optional uppercase letters followed by one to
// three digits) from the text around it. Without a code the whole line is the name.
func SplitCode(s string) CodeSplit {
	loc := productCodeRe.FindStringIndex(s)
	if loc == nil {
		return CodeSplit{Name: strings.TrimSpace(s)}
	}
	return CodeSplit{
		Prefix:  strings.TrimSpace(s[:loc[0]]),
		Code:    s[loc[0]:loc[1]],
		Name:    strings.TrimSpace(s[loc[1]:]),
		Matched: true,
	}
}

// JoinSections joins a card's section labels with single spaces, in order.
func JoinSections(fragments []string) string {
	return strings.Join(fragments, " ")
}
