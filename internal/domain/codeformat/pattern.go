package codeformat

import (
	"fmt"
	"strings"
	"time"
)

// Pattern is the compiled form of a format: a closed component list rendered
// by straight concatenation. Separators are materialized as Literal components
// at compile time, so rendering never has to guess where they belong.
type Pattern []Component

type ComponentKind int

const (
	KindLiteral ComponentKind = iota
	KindYear
	KindMonth
	KindDay
	KindSequence
)

type Component struct {
	Kind    ComponentKind
	Literal string // KindLiteral only
	Width   int    // KindSequence only, zero-pad width
}

// Compile turns the stored configuration into a Pattern. A non-empty legacy
// FormatPattern wins over the discrete flags.
func (f *CodeFormat) Compile() (Pattern, error) {
	width := f.SequenceLength
	if width <= 0 {
		width = DefaultSequenceLength
	}
	if f.FormatPattern != "" {
		return parseTemplate(f.FormatPattern, width)
	}

	sep := f.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	var parts []Component
	if f.Prefix != "" {
		parts = append(parts, Component{Kind: KindLiteral, Literal: f.Prefix})
	}
	if f.IncludeYear {
		parts = append(parts, Component{Kind: KindYear})
	}
	if f.IncludeMonth {
		parts = append(parts, Component{Kind: KindMonth})
	}
	if f.IncludeDay {
		parts = append(parts, Component{Kind: KindDay})
	}
	parts = append(parts, Component{Kind: KindSequence, Width: width})
	if f.Suffix != "" {
		parts = append(parts, Component{Kind: KindLiteral, Literal: f.Suffix})
	}

	out := make(Pattern, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, Component{Kind: KindLiteral, Literal: sep})
		}
		out = append(out, p)
	}
	return out, nil
}

// parseTemplate tokenizes a legacy "{YEAR}-{SEQUENCE}" style template. Literal
// text between placeholders is kept verbatim, so the template carries its own
// separators. Unknown placeholders are a configuration error.
func parseTemplate(raw string, seqWidth int) (Pattern, error) {
	var out Pattern
	rest := raw
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out = append(out, Component{Kind: KindLiteral, Literal: rest})
			break
		}
		if open > 0 {
			out = append(out, Component{Kind: KindLiteral, Literal: rest[:open]})
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			return nil, fmt.Errorf("%w: unterminated placeholder in %q", ErrInvalidConfig, raw)
		}
		name := rest[open+1 : open+close]
		switch name {
		case "YEAR":
			out = append(out, Component{Kind: KindYear})
		case "MONTH":
			out = append(out, Component{Kind: KindMonth})
		case "DAY":
			out = append(out, Component{Kind: KindDay})
		case "SEQUENCE":
			out = append(out, Component{Kind: KindSequence, Width: seqWidth})
		default:
			return nil, fmt.Errorf("%w: unknown placeholder {%s}", ErrInvalidConfig, name)
		}
		rest = rest[open+close+1:]
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidConfig)
	}
	return out, nil
}

// Render formats one code. The date components use the issuance moment's
// calendar date, not any business date of the target entity.
func (p Pattern) Render(seq int64, at time.Time) string {
	var b strings.Builder
	for _, c := range p {
		switch c.Kind {
		case KindLiteral:
			b.WriteString(c.Literal)
		case KindYear:
			fmt.Fprintf(&b, "%04d", at.Year())
		case KindMonth:
			fmt.Fprintf(&b, "%02d", int(at.Month()))
		case KindDay:
			fmt.Fprintf(&b, "%02d", at.Day())
		case KindSequence:
			fmt.Fprintf(&b, "%0*d", c.Width, seq)
		}
	}
	return b.String()
}
