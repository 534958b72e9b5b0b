package styled

import (
	"strings"
	"unicode"
)

// Case conversions map rune for rune so the style buffer stays aligned.

// titleSeparators ends a word for TitleCase.
const titleSeparators = " -_()[:,;./\\\t\n\""

// sentenceEnders ends a sentence for SentenceCase.
const sentenceEnders = ".?!"

// ToLower returns a lower-cased copy with styles preserved.
func (s *String) ToLower() *String {
	return s.mapRunes(unicode.ToLower)
}

// ToUpper returns an upper-cased copy with styles preserved.
func (s *String) ToUpper() *String {
	return s.mapRunes(unicode.ToUpper)
}

// TitleCase returns a copy with the first letter of every word upper-cased.
// With lowerFirst the rest of the text is lower-cased first.
func (s *String) TitleCase(lowerFirst bool) *String {
	out := s.Clone()
	if lowerFirst {
		mapInPlace(out.text, unicode.ToLower)
	}

	wordStart := true
	for i, ch := range out.text {
		sep := strings.ContainsRune(titleSeparators, ch)
		if wordStart {
			if !sep {
				wordStart = false
				out.text[i] = unicode.ToUpper(ch)
			}
		} else if sep {
			wordStart = true
		}
	}
	return out
}

// SentenceCase returns a copy with the first letter or digit of every
// sentence upper-cased. A sentence starts at the beginning of the text and
// after '.', '?' or '!', except that three or more consecutive dots (an
// ellipsis) continue the current sentence.
//
// awaitingCapital carries state across chunks processed separately. When
// non-nil, it tells whether the text starts a new sentence and receives
// whether the chunk ended awaiting a capital. A nil pointer starts a new
// sentence.
func (s *String) SentenceCase(lowerFirst bool, awaitingCapital *bool) *String {
	out := s.Clone()
	if lowerFirst {
		mapInPlace(out.text, unicode.ToLower)
	}

	startSentence := true
	if awaitingCapital != nil {
		startSentence = *awaitingCapital
	}
	if len(out.text) == 0 {
		return out
	}

	prevDots := 0
	for i, ch := range out.text {
		if strings.ContainsRune(sentenceEnders, ch) {
			if ch == '.' {
				prevDots++
				startSentence = prevDots < 3
			} else {
				prevDots = 0
				startSentence = true
			}
			continue
		}
		if startSentence && (unicode.IsLetter(ch) || unicode.IsNumber(ch)) {
			out.text[i] = unicode.ToUpper(ch)
			startSentence = false
		}
		if !unicode.IsSpace(ch) {
			prevDots = 0
		}
	}

	if awaitingCapital != nil {
		*awaitingCapital = startSentence
	}
	return out
}

func (s *String) mapRunes(fn func(rune) rune) *String {
	out := s.Clone()
	mapInPlace(out.text, fn)
	return out
}

func mapInPlace(text []rune, fn func(rune) rune) {
	for i, ch := range text {
		text[i] = fn(ch)
	}
}
