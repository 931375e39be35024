package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestByExtension_PlainText(t *testing.T) {
	content := "héllo wörld\nsecond line"
	got, err := ByExtension([]byte(content), ".txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Fatalf("text extraction must return exact bytes, got %q", got)
	}

	if _, err := ByExtension([]byte("# heading"), ".md"); err != nil {
		t.Fatalf("markdown should extract as raw text: %v", err)
	}
}

func TestByExtension_Docx(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	got, err := ByExtension(data, ".docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "First paragraph") || !strings.Contains(got, "Second paragraph") {
		t.Fatalf("missing paragraph text: %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected paragraph break, got %q", got)
	}
}

func TestByExtension_DocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := ByExtension(buf.Bytes(), ".docx"); err == nil {
		t.Fatal("expected error for zip without document.xml")
	}
}

func TestByExtension_Unsupported(t *testing.T) {
	_, err := ByExtension([]byte{0x4d, 0x5a}, ".exe")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if !strings.Contains(err.Error(), ".exe") {
		t.Fatalf("error should name the extension: %v", err)
	}
}

func TestExt(t *testing.T) {
	cases := map[string]string{
		"1700-report.pdf": ".pdf",
		"notes.TXT":       ".TXT",
		"noextension":     ".txt",
	}
	for in, want := range cases {
		if got := Ext(in); got != want {
			t.Fatalf("Ext(%q) = %q, want %q", in, got, want)
		}
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
