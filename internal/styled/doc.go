// Package styled provides text with per-character styles and a find/replace
// pipeline that keeps text and styles synchronized.
//
// A String pairs a rune buffer with a RunArray holding one Style (flags plus
// an optional color) for every character. Every public operation leaves both
// buffers the same length.
//
// # Architecture
//
// The package is built from a few cooperating parts:
//
//   - RunArray: parallel flag and color buffers with an explicit capacity policy
//   - String: construction, queries, structural and attribute edits
//   - Match: computes a list of RefSpan values describing a replacement
//   - Materialize: builds the result from spans into fresh buffers
//   - Markup, binary and JSON encodings
//
// # Replacement
//
// Replacement is done in two phases. Match scans the subject once and
// returns spans that copy either from the subject or from the replacement
// text, ending with a terminator span that carries the result length.
// Materialize then assembles the new text and styles and swaps them in, so
// a String never exposes a half-replaced state.
//
//	s := styled.New("John Smith")
//	s.SetFlags(0, 4, styled.Bold)
//	s.Replace(styled.Pattern(`(\w+) (\w+)`, styled.CaseSensitive), styled.Plain(`\2 \1`))
//	// s.Text() == "Smith John", "John" is still bold
//
// Plain replacement text takes the style of the subject character right
// after the last subject span copied before it. A styled replacement keeps
// its own styles. Captured groups inserted with \N keep the styles they had
// in the subject.
//
// # Markup
//
// Markup and ParseMarkup convert to and from an inline form using <b>, <i>,
// <u>, <s> and <font color=#rrggbb>:
//
//	s := styled.ParseMarkup("<b>bold</b> and <font color=#ff0000>red</font>")
//	s.Markup() // "<b>bold</b> and <font color=#ff0000>red</font>"
//
// # Thread Safety
//
// A String is not safe for concurrent use. Copies are always deep, so
// separate Strings may be used from separate goroutines.
package styled
