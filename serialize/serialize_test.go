package serialize

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mechiko/pdfmerge/types"
)

func TestSerializeScalars(t *testing.T) {
	cases := []struct {
		name string
		tok  types.Token
		want string
	}{
		{"null", types.Null{}, "null "},
		{"true", types.Boolean(true), "true "},
		{"false", types.Boolean(false), "false "},
		{"integer", types.Integer(612), "612 "},
		{"negative integer", types.Integer(-12), "-12 "},
		{"real", types.Real(792.0), "792 "},
		{"real fraction", types.Real(0.5), "0.5 "},
		{"name simple", types.Name("Font"), "/Font "},
		{"indirect ref", types.IndirectRef{ObjectNumber: 7, Generation: 0}, "7 0 R "},
		{"hex", types.Hex{Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}}, "<DEADBEEF>"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New()
			got, err := s.Serialize(c.tok)
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			if string(got) != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestSerializeNameEscaping(t *testing.T) {
	s := New()
	got, err := s.Serialize(types.Name("A B(D)"))
	if err != nil {
		t.Fatal(err)
	}
	want := "/A#20B#28D#29 "
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeStringLatin1Escaping(t *testing.T) {
	s := New()
	got, err := s.Serialize(types.StringLiteral{Value: `a(b)c\d`})
	if err != nil {
		t.Fatal(err)
	}
	want := `(a\(b\)c\\d)`
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeStringPromotesToUTF16(t *testing.T) {
	s := New()
	// U+0401 (1025 as a Go rune value) exceeds the 250 threshold.
	got, err := s.Serialize(types.StringLiteral{Value: "Ё"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(got, []byte("(\xfe\xff")) {
		t.Errorf("expected UTF-16BE BOM literal, got %x", got)
	}
}

func TestSerializeArrayAndDictOrder(t *testing.T) {
	d := types.NewDict()
	d.Insert("Type", types.Name("Page"))
	d.Insert("MediaBox", types.Array{types.Integer(0), types.Integer(0), types.Integer(612), types.Integer(792)})

	s := New()
	got, err := s.Serialize(d)
	if err != nil {
		t.Fatal(err)
	}
	want := "<</Type /Page /MediaBox [0 0 612 792 ]>>"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeStreamBody(t *testing.T) {
	d := types.NewDict()
	d.Insert("Length", types.Integer(5))
	s := New()
	got, err := s.Serialize(types.Stream{Dict: d, Data: []byte("hello")})
	if err != nil {
		t.Fatal(err)
	}
	want := "<</Length 5 >>\nstream\nhello\nendstream"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeRejectsObjectWrapper(t *testing.T) {
	s := New()
	_, err := s.Serialize(types.Object{ObjectNumber: 1})
	if err == nil {
		t.Fatal("expected error for Object token")
	}
}

func TestWriteXrefContiguous(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOffsetWriter(&buf)
	entries := map[int]int64{1: 9, 2: 20, 3: 40}
	catalogRef := types.IndirectRef{ObjectNumber: 1}
	if err := WriteXref(ow, entries, catalogRef, nil); err != nil {
		t.Fatalf("WriteXref: %v", err)
	}
	if err := ow.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "xref\n0 4\n") {
		t.Errorf("missing subsection header, got:\n%s", out)
	}
	if !strings.Contains(out, "startxref\n") || !strings.HasSuffix(out, "%%EOF") {
		t.Errorf("missing startxref/footer, got:\n%s", out)
	}
}

func TestWriteXrefFragmentedRange(t *testing.T) {
	var buf bytes.Buffer
	ow := NewOffsetWriter(&buf)
	entries := map[int]int64{1: 9, 3: 40} // gap at 2
	err := WriteXref(ow, entries, types.IndirectRef{ObjectNumber: 1}, nil)
	if err == nil {
		t.Fatal("expected ErrFragmentedObjectRange")
	}
	if !errors.Is(err, types.ErrFragmentedObjectRange) {
		t.Errorf("expected ErrFragmentedObjectRange, got %v", err)
	}
}
