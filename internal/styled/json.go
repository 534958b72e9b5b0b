package styled

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSON form:
//
//	{"text": "Hello", "runs": [{"len": 2, "flags": 17, "color": "#ff0000"}, {"len": 3, "flags": 0}]}
//
// Runs are run-length encoded and cover the text exactly. "color" appears
// only on runs with the Color flag, so a color stored without the flag is
// not preserved.

// MarshalJSON implements json.Marshaler.
func (s *String) MarshalJSON() ([]byte, error) {
	out, err := sjson.Set("{}", "text", string(s.text))
	if err != nil {
		return nil, err
	}
	out, err = sjson.SetRaw(out, "runs", "[]")
	if err != nil {
		return nil, err
	}

	runs := s.rs()
	for i := 0; i < len(s.text); {
		st := runs.At(i)
		j := i + 1
		for j < len(s.text) && runs.At(j).Equal(st) {
			j++
		}

		run, err := encodeRun(j-i, st)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRaw(out, "runs.-1", run); err != nil {
			return nil, err
		}
		i = j
	}
	return []byte(out), nil
}

// encodeRun returns the JSON object of one run.
func encodeRun(n int, st Style) (string, error) {
	run, err := sjson.Set("{}", "len", n)
	if err != nil {
		return "", err
	}
	if run, err = sjson.Set(run, "flags", int(st.Flags)); err != nil {
		return "", err
	}
	if st.Flags.Has(Color) {
		if run, err = sjson.Set(run, "color", st.Color.Hex()); err != nil {
			return "", err
		}
	}
	return run, nil
}

// UnmarshalJSON implements json.Unmarshaler. On error the String is
// unchanged.
func (s *String) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return fmt.Errorf("%w: expected object", ErrInvalidJSON)
	}
	textField := doc.Get("text")
	if textField.Type != gjson.String {
		return fmt.Errorf("%w: missing text", ErrInvalidJSON)
	}
	text := []rune(textField.String())
	runs := NewRunArray(len(text))

	pos := 0
	var decodeErr error
	doc.Get("runs").ForEach(func(_, run gjson.Result) bool {
		n := int(run.Get("len").Int())
		if n < 0 || pos+n > len(text) {
			decodeErr = fmt.Errorf("%w: run length %d at offset %d exceeds text", ErrInvalidJSON, n, pos)
			return false
		}
		st := Style{Flags: StyleFlags(run.Get("flags").Uint()) & AllStyles}
		if c := run.Get("color"); c.Exists() {
			color, err := ParseColor(c.String())
			if err != nil {
				decodeErr = fmt.Errorf("%w: %w", ErrInvalidJSON, err)
				return false
			}
			st.Color = color
		}
		runs.Fill(pos, n, st.Flags, st.Color)
		pos += n
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	if doc.Get("runs").Exists() && pos != len(text) {
		return fmt.Errorf("%w: runs cover %d of %d characters", ErrInvalidJSON, pos, len(text))
	}

	s.swap(text, runs)
	return nil
}
