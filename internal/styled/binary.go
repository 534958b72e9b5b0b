package styled

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// Binary layout, all integers big-endian:
//
//	uint32       byte length of the text
//	[]byte       text as UTF-16BE, no BOM
//	[n]uint8     flags, one per character
//	[n]uint32    colors, one per character
//
// A length of 0xFFFFFFFF is read as an empty string and never written.

const nullLength = math.MaxUint32

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *String) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Trailing bytes are
// ignored.
func (s *String) UnmarshalBinary(data []byte) error {
	_, err := s.ReadFrom(bytes.NewReader(data))
	return err
}

// WriteTo implements io.WriterTo.
func (s *String) WriteTo(w io.Writer) (int64, error) {
	encoded, err := utf16BE.NewEncoder().Bytes([]byte(string(s.text)))
	if err != nil {
		return 0, fmt.Errorf("encode text: %w", err)
	}
	if uint64(len(encoded)) >= nullLength {
		return 0, ErrTooLarge
	}

	n := len(s.text)
	out := make([]byte, 0, 4+len(encoded)+5*n)
	out = binary.BigEndian.AppendUint32(out, uint32(len(encoded)))
	out = append(out, encoded...)
	runs := s.rs()
	for i := 0; i < n; i++ {
		out = append(out, byte(runs.flags[i]))
	}
	for i := 0; i < n; i++ {
		out = binary.BigEndian.AppendUint32(out, uint32(runs.colors[i]))
	}

	written, err := w.Write(out)
	return int64(written), err
}

// ReadFrom implements io.ReaderFrom. The String is replaced only after the
// whole record has been read; on error it is unchanged.
func (s *String) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	read := func(buf []byte) error {
		n, err := io.ReadFull(r, buf)
		total += int64(n)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrTruncated
		}
		return err
	}
	// readN grows its buffer as data arrives, so a corrupt length cannot
	// allocate more than the input holds.
	readN := func(n int64) ([]byte, error) {
		var buf bytes.Buffer
		got, err := io.CopyN(&buf, r, n)
		total += got
		if errors.Is(err, io.EOF) {
			return nil, ErrTruncated
		}
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var hdr [4]byte
	if err := read(hdr[:]); err != nil {
		return total, err
	}
	byteLen := binary.BigEndian.Uint32(hdr[:])
	if byteLen == nullLength {
		byteLen = 0
	}
	if byteLen%2 != 0 {
		return total, fmt.Errorf("%w: odd UTF-16 length %d", ErrTruncated, byteLen)
	}

	raw, err := readN(int64(byteLen))
	if err != nil {
		return total, err
	}
	decoded, err := utf16BE.NewDecoder().Bytes(raw)
	if err != nil {
		return total, fmt.Errorf("decode text: %w", err)
	}
	text := []rune(string(decoded))

	runs := NewRunArray(len(text))
	flags, err := readN(int64(len(text)))
	if err != nil {
		return total, err
	}
	colors, err := readN(4 * int64(len(text)))
	if err != nil {
		return total, err
	}
	for i := range text {
		runs.flags[i] = StyleFlags(flags[i]) & AllStyles
		runs.colors[i] = RGBColor(binary.BigEndian.Uint32(colors[4*i:]))
	}

	s.swap(text, runs)
	return total, nil
}
