package styled

import (
	"strings"
)

// Markup uses a fixed tag set: <b>, <i>, <u>, <s>, <font color=#rrggbb> and
// their closers. It is not a general HTML dialect.

// Markup returns the string in inline markup form.
//
// At every style change, tags that end are closed in the order s, u, b, i,
// font. Whitespace and line breaks that follow the change are written before
// new tags are opened, in the order i, b, u, s, font. Literal '<' and '>'
// are escaped as &lt; and &gt;.
func (s *String) Markup() string {
	if len(s.text) == 0 {
		return ""
	}
	runs := s.rs()
	var sb strings.Builder

	open := runs.At(0)
	writeOpenTags(&sb, Style{}, open)

	for i := 0; i < len(s.text); i++ {
		cur := runs.At(i)
		if !cur.Equal(open) {
			open = writeCloseTags(&sb, open, cur)

			// New tags never precede leading whitespace of the next run.
			for i < len(s.text) && isMarkupSpace(s.text[i]) {
				sb.WriteRune(s.text[i])
				i++
			}
			if i == len(s.text) {
				break
			}

			cur = runs.At(i)
			open = writeCloseTags(&sb, open, cur)
			writeOpenTags(&sb, open, cur)
			open = cur
		}
		writeEscaped(&sb, s.text[i])
	}
	writeCloseTags(&sb, open, Style{})
	return sb.String()
}

// SetMarkup replaces the contents with the parsed markup.
func (s *String) SetMarkup(markup string) {
	parsed := ParseMarkup(markup)
	s.swap(parsed.text, parsed.runs)
}

// ParseMarkup builds a String from inline markup.
//
// Tags are scanned sequentially and update the current style; the text
// between tags is appended with that style. A tag name must follow '<' or
// '</' directly; anything else, including unknown tags, is literal text.
// Font colors may be hex or CSS names. &lt;/&gt; are decoded.
func ParseMarkup(markup string) *String {
	out := &String{runs: &RunArray{}}
	var cur Style
	var segment strings.Builder

	flush := func() {
		if segment.Len() == 0 {
			return
		}
		out.AppendStyled(NewStyled(unescapeMarkup(segment.String()), cur.Flags, cur.Color))
		segment.Reset()
	}

	for pos := 0; pos < len(markup); {
		lt := strings.IndexByte(markup[pos:], '<')
		if lt < 0 {
			segment.WriteString(markup[pos:])
			break
		}
		segment.WriteString(markup[pos : pos+lt])
		pos += lt

		gt := strings.IndexByte(markup[pos:], '>')
		if gt < 0 {
			segment.WriteString(markup[pos:])
			break
		}
		tag := markup[pos+1 : pos+gt]
		next, ok := applyTag(cur, tag)
		if !ok {
			// Only the '<' is literal; a tag may still start after it.
			segment.WriteByte('<')
			pos++
			continue
		}
		flush()
		cur = next
		pos += gt + 1
	}
	flush()
	return out
}

// applyTag returns the style after tag, or false when tag is not part of
// the markup grammar. The name must follow '<' or '</' directly.
func applyTag(cur Style, tag string) (Style, bool) {
	closing := strings.HasPrefix(tag, "/")
	if closing {
		tag = tag[1:]
	}
	if tag == "" || isMarkupSpace(rune(tag[0])) {
		return cur, false
	}
	name, attrs := tag, ""
	if sp := strings.IndexAny(tag, " \t\r\n"); sp >= 0 {
		name, attrs = tag[:sp], tag[sp+1:]
	}
	name = strings.ToLower(strings.TrimSuffix(name, "/"))

	var flag StyleFlags
	switch name {
	case "b":
		flag = Bold
	case "i":
		flag = Italic
	case "u":
		flag = Underline
	case "s":
		flag = StrikeThrough
	case "font":
		flag = Color
	default:
		return cur, false
	}

	if closing {
		cur.Flags &^= flag
		if flag == Color {
			cur.Color = NoColor
		}
		return cur, true
	}
	if flag == Color {
		value, found := fontColorAttr(attrs)
		if !found {
			return cur, true
		}
		c, err := ParseColor(value)
		if err != nil {
			logger().Debug("ignoring font color %q: %v", value, err)
			return cur, true
		}
		cur.Flags |= Color
		cur.Color = c
		return cur, true
	}
	cur.Flags |= flag
	return cur, true
}

// fontColorAttr extracts the value of a color= attribute.
func fontColorAttr(attrs string) (string, bool) {
	lower := strings.ToLower(attrs)
	idx := strings.Index(lower, "color")
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeft(attrs[idx+len("color"):], " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", false
	}
	rest = strings.TrimLeft(rest[1:], " \t")
	if rest == "" {
		return "", false
	}
	if q := rest[0]; q == '"' || q == '\'' {
		end := strings.IndexByte(rest[1:], q)
		if end < 0 {
			return rest[1:], true
		}
		return rest[1 : end+1], true
	}
	end := strings.IndexAny(rest, " \t/")
	if end < 0 {
		return rest, true
	}
	return rest[:end], true
}

// writeCloseTags closes every tag of open that next does not keep and
// returns the style that remains open.
func writeCloseTags(sb *strings.Builder, open, next Style) Style {
	for _, f := range []StyleFlags{StrikeThrough, Underline, Bold, Italic} {
		if open.Flags&f != 0 && next.Flags&f == 0 {
			sb.WriteString(closeTag(f))
			open.Flags &^= f
		}
	}
	if open.Flags&Color != 0 && (next.Flags&Color == 0 || open.Color != next.Color) {
		sb.WriteString("</font>")
		open.Flags &^= Color
		open.Color = NoColor
	}
	return open
}

// writeOpenTags opens every tag of next that open lacks.
func writeOpenTags(sb *strings.Builder, open, next Style) {
	for _, f := range []StyleFlags{Italic, Bold, Underline, StrikeThrough} {
		if open.Flags&f == 0 && next.Flags&f != 0 {
			sb.WriteString(openTag(f))
		}
	}
	if next.Flags&Color != 0 && (open.Flags&Color == 0 || open.Color != next.Color) {
		sb.WriteString("<font color=")
		sb.WriteString(next.Color.Hex())
		sb.WriteString(">")
	}
}

func openTag(f StyleFlags) string {
	switch f {
	case Bold:
		return "<b>"
	case Italic:
		return "<i>"
	case Underline:
		return "<u>"
	case StrikeThrough:
		return "<s>"
	}
	return ""
}

func closeTag(f StyleFlags) string {
	switch f {
	case Bold:
		return "</b>"
	case Italic:
		return "</i>"
	case Underline:
		return "</u>"
	case StrikeThrough:
		return "</s>"
	}
	return ""
}

func isMarkupSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func writeEscaped(sb *strings.Builder, r rune) {
	switch r {
	case '<':
		sb.WriteString("&lt;")
	case '>':
		sb.WriteString("&gt;")
	default:
		sb.WriteRune(r)
	}
}

var markupUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">")

func unescapeMarkup(s string) string {
	return markupUnescaper.Replace(s)
}
