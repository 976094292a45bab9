package feed

import (
	"strings"
	"unicode/utf8"
)

const (
	crlf = "\r\n"

	// maxLineOctets is the longest a physical content line may be, excluding
	// the line terminator.
	maxLineOctets = 75
)

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\n", `\n`,
)

// Escape returns s escaped for use as a TEXT property value. Line breaks of
// any flavour become the two characters `\n`.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return textEscaper.Replace(s)
}

// Fold splits a single content line into physical lines of at most 75 octets.
// Continuation lines start with a space, so they carry 74 octets of content.
// A split is moved back to the nearest rune boundary rather than breaking a
// UTF-8 sequence.
func Fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + len(line)/(maxLineOctets-1)*len(crlf+" "))

	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		b.WriteString(line[:cut])
		b.WriteString(crlf + " ")
		line = line[cut:]
		limit = maxLineOctets - 1
	}
	b.WriteString(line)

	return b.String()
}
