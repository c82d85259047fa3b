package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fumiama/go-docx"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// pdfWithPages builds a small PDF whose page tree holds pages blank pages.
func pdfWithPages(pages int) []byte {
	objects := []string{"<< /Type /Catalog /Pages 2 0 R >>"}
	kids := ""
	for i := range pages {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pages))
	for range pages {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestInspectPDF(t *testing.T) {
	path := writeFile(t, "cv.pdf", string(pdfWithPages(3)))

	file, err := Inspect(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.MIME != MIMEPDF {
		t.Fatalf("expected pdf mime, got %q", file.MIME)
	}
	if file.Pages != 3 || file.Warning != "" {
		t.Fatalf("expected 3 pages and no warning, got %+v", file)
	}
	if err := Check(file); err != nil {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestInspectDOCX(t *testing.T) {
	doc := docx.New()
	doc.AddParagraph().AddText("Jane Doe")
	doc.AddParagraph().AddText("Senior Go engineer")
	doc.AddParagraph()

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	path := writeFile(t, "cv.docx", buf.String())

	file, err := Inspect(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.MIME != MIMEDOCX {
		t.Fatalf("expected docx mime, got %q", file.MIME)
	}
	if file.Paragraphs != 2 || file.Warning != "" {
		t.Fatalf("expected 2 paragraphs and no warning, got %+v", file)
	}
	if err := Check(file); err != nil {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestInspectPlainTextIsRejected(t *testing.T) {
	path := writeFile(t, "notes.txt", "just some notes\n")

	file, err := Inspect(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Name != "notes.txt" || file.Size != 16 {
		t.Fatalf("unexpected file: %+v", file)
	}
	if file.Pages != 0 || file.Paragraphs != 0 || file.Warning != "" {
		t.Fatalf("expected no preview for text file, got %+v", file)
	}

	if err := Check(file); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestInspectBrokenPDFWarns(t *testing.T) {
	path := writeFile(t, "cv.pdf", "%PDF-1.4\nnot really a pdf\n")

	file, err := Inspect(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.MIME != MIMEPDF {
		t.Fatalf("expected pdf mime, got %q", file.MIME)
	}
	if file.Warning == "" {
		t.Fatalf("expected a warning for a broken pdf")
	}
	if err := Check(file); err != nil {
		t.Fatalf("broken but typed pdf must pass the type check: %v", err)
	}
}

func TestInspectErrors(t *testing.T) {
	if _, err := Inspect(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory")
	}
	if _, err := Inspect(filepath.Join(t.TempDir(), "missing.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mime string
		want bool
	}{
		{mime: "application/pdf", want: true},
		{mime: "Application/PDF", want: true},
		{mime: MIMEDOCX, want: true},
		{mime: "text/plain; charset=utf-8", want: false},
		{mime: "application/msword", want: false},
		{mime: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			t.Parallel()
			if got := Allowed(tt.mime); got != tt.want {
				t.Fatalf("Allowed(%q): expected %v, got %v", tt.mime, tt.want, got)
			}
		})
	}

	if err := Check(nil); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected nil file to be rejected")
	}
}

func TestOpen(t *testing.T) {
	path := writeFile(t, "cv.pdf", "%PDF-1.4\n")
	file := &File{Path: path, Name: "cv.pdf", MIME: MIMEPDF}

	up, closer, err := file.Open()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closer.Close()

	if up.Filename != "cv.pdf" || up.ContentType != MIMEPDF {
		t.Fatalf("unexpected upload: %+v", up)
	}
	data, err := io.ReadAll(up.Body)
	if err != nil || string(data) != "%PDF-1.4\n" {
		t.Fatalf("unexpected body %q, err %v", data, err)
	}
}
