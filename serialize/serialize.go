// Package serialize implements TokenSerializer: deterministic,
// canonical-syntax emission of PDF tokens, object records, and the
// classic cross-reference table/trailer (spec.md §4.1).
//
// String and name escaping follow the pattern in benoitkugler/pdf's
// model/write.go (golang.org/x/text/encoding/unicode for the UTF-16BE+BOM
// fallback); object/xref framing follows pdfcpu's write/objects.go and
// write/write.go (writeHeader, writeObjectHeader, writeXRefSubsection).
package serialize

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"

	"github.com/mechiko/pdfmerge/types"
)

var utf16BEWithBOM = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

// Serializer renders tokens to canonical PDF syntax into a reusable
// scratch buffer (spec.md §5: "reused across writeToken calls, reset not
// reallocated").
type Serializer struct {
	buf bytes.Buffer
}

// New returns a ready-to-use Serializer.
func New() *Serializer {
	return &Serializer{}
}

// Serialize renders tok and returns a freshly allocated copy of the
// resulting bytes - callers must copy before reuse since the internal
// buffer is reset on the next call.
func (s *Serializer) Serialize(tok types.Token) ([]byte, error) {
	s.buf.Reset()
	if err := s.write(tok); err != nil {
		return nil, err
	}
	out := make([]byte, s.buf.Len())
	copy(out, s.buf.Bytes())
	return out, nil
}

func (s *Serializer) write(tok types.Token) error {
	switch t := tok.(type) {

	case types.Null:
		s.buf.WriteString("null ")

	case types.Boolean:
		if t {
			s.buf.WriteString("true ")
		} else {
			s.buf.WriteString("false ")
		}

	case types.Integer:
		s.buf.WriteString(strconv.FormatInt(int64(t), 10))
		s.buf.WriteByte(' ')

	case types.Real:
		s.buf.WriteString(formatReal(float64(t)))
		s.buf.WriteByte(' ')

	case types.Name:
		s.writeName(t)

	case types.StringLiteral:
		s.writeString(t)

	case types.Hex:
		s.writeHex(t.Data)

	case types.Comment:
		s.buf.WriteByte('%')
		s.buf.WriteString(string(t))
		s.buf.WriteByte('\n')

	case types.Array:
		s.buf.WriteByte('[')
		for _, e := range t {
			if err := s.write(e); err != nil {
				return err
			}
		}
		s.buf.WriteByte(']')

	case types.Dict:
		return s.writeDict(t)

	case types.Stream:
		if err := s.writeDict(t.Dict); err != nil {
			return err
		}
		s.buf.WriteString("\nstream\n")
		s.buf.Write(t.Data)
		s.buf.WriteString("\nendstream")

	case types.IndirectRef:
		s.buf.WriteString(strconv.Itoa(t.ObjectNumber))
		s.buf.WriteByte(' ')
		s.buf.WriteString(strconv.Itoa(t.Generation))
		s.buf.WriteString(" R ")

	case types.Object:
		return errors.Wrap(types.ErrUnexpectedObjectWrapper, "serialize")

	default:
		return errors.Errorf("serialize: unknown token type %T", tok)
	}
	return nil
}

// formatReal renders a decimal without scientific notation. PDF numbers
// never use an exponent (unlike .NET's invariant "G" format, which can
// emit one for very large/small magnitudes), so 'f' with shortest
// round-trip precision is used instead.
func formatReal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s *Serializer) writeName(n types.Name) {
	s.buf.WriteByte('/')
	for i := 0; i < len(n); i++ {
		c := n[i]
		if nameNeedsEscape(c) {
			fmt.Fprintf(&s.buf, "#%02X", c)
			continue
		}
		s.buf.WriteByte(c)
	}
	s.buf.WriteByte(' ')
}

func nameNeedsEscape(c byte) bool {
	if c < 0x21 || c > 0x7E {
		return true
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (s *Serializer) writeString(str types.StringLiteral) {
	if str.Encoding == types.UTF16BE || needsUTF16(str.Value) {
		s.writeUTF16Literal(str.Value)
		return
	}
	s.buf.WriteByte('(')
	for i := 0; i < len(str.Value); i++ {
		c := str.Value[i]
		switch c {
		case '(', ')', '\\':
			s.buf.WriteByte('\\')
		}
		s.buf.WriteByte(c)
	}
	s.buf.WriteByte(')')
}

// needsUTF16 reports whether any rune's code point exceeds the Latin-1
// literal threshold (spec.md §4.1/§9: pragmatic, known to misclassify).
func needsUTF16(s string) bool {
	for _, r := range s {
		if r > 250 {
			return true
		}
	}
	return false
}

// writeUTF16Literal re-encodes s as UTF-16BE with a leading BOM and
// emits it as a literal string, bypassing the Latin-1 escape scan
// (spec.md §4.1: "UTF-16BE strings skip the Latin-1 escape scan").
func (s *Serializer) writeUTF16Literal(str string) {
	b, err := utf16BEWithBOM.NewEncoder().Bytes([]byte(str))
	if err != nil {
		b = []byte(str)
	}
	s.buf.WriteByte('(')
	s.buf.Write(b)
	s.buf.WriteByte(')')
}

func (s *Serializer) writeHex(data []byte) {
	s.buf.WriteByte('<')
	fmt.Fprintf(&s.buf, "%X", data)
	s.buf.WriteByte('>')
}

func (s *Serializer) writeDict(d types.Dict) error {
	s.buf.WriteString("<<")
	for _, k := range d.Keys() {
		s.writeName(k)
		v, _ := d.Get(k)
		if err := s.write(v); err != nil {
			return err
		}
	}
	s.buf.WriteString(">>")
	return nil
}
