// Package upload checks a local CV file before it is sent to the API.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/gabriel-vasile/mimetype"
	pdflib "github.com/ledongthuc/pdf"

	"github.com/recruitgenius/recruit-cli/internal/recruit"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedTypes are the only MIME types the upload endpoint accepts.
var AllowedTypes = []string{MIMEPDF, MIMEDOCX}

// UnsupportedTypeMessage is shown to the user when a file is rejected.
const UnsupportedTypeMessage = "Only PDF and DOCX files are allowed"

var ErrUnsupportedType = errors.New("only PDF and DOCX files are allowed")

// File is a local file picked for upload.
type File struct {
	Path string `json:"path" yaml:"path"`
	Name string `json:"name" yaml:"name"`
	MIME string `json:"mime" yaml:"mime"`
	Size int64  `json:"size" yaml:"size"`

	// Filled for allowed types only.
	Pages      int    `json:"pages,omitempty" yaml:"pages,omitempty"`
	Paragraphs int    `json:"paragraphs,omitempty" yaml:"paragraphs,omitempty"`
	Warning    string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Inspect detects the MIME type of path from its content. For PDF and DOCX
// files it also opens the document to count pages or paragraphs; a document
// that fails to open is reported in Warning and is not an error.
func Inspect(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect type of %s: %w", path, err)
	}

	file := &File{
		Path: path,
		Name: filepath.Base(path),
		MIME: mtype.String(),
		Size: info.Size(),
	}

	switch {
	case mtype.Is(MIMEPDF):
		file.MIME = MIMEPDF
		file.Pages, err = countPages(path)
	case mtype.Is(MIMEDOCX):
		file.MIME = MIMEDOCX
		file.Paragraphs, err = countParagraphs(path, info.Size())
	}
	if err != nil {
		file.Warning = err.Error()
	}

	return file, nil
}

// Allowed reports whether mime is one of AllowedTypes. Parameters such as
// "; charset=utf-8" are ignored.
func Allowed(mime string) bool {
	base, _, _ := strings.Cut(mime, ";")
	return slices.Contains(AllowedTypes, strings.TrimSpace(strings.ToLower(base)))
}

// Check returns ErrUnsupportedType unless the file has an allowed type.
func Check(f *File) error {
	if f == nil || !Allowed(f.MIME) {
		return ErrUnsupportedType
	}
	return nil
}

// Open returns the file as an upload body. The caller closes the returned
// closer once the upload is done.
func (f *File) Open() (recruit.Upload, io.Closer, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return recruit.Upload{}, nil, err
	}

	return recruit.Upload{
		Filename:    f.Name,
		ContentType: f.MIME,
		Body:        fh,
	}, fh, nil
}

func countPages(path string) (pages int, err error) {
	// the pdf reader panics on some malformed cross reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	fh, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	defer fh.Close()

	return reader.NumPage(), nil
}

func countParagraphs(path string, size int64) (int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer fh.Close()

	doc, err := docx.Parse(fh, size)
	if err != nil {
		return 0, fmt.Errorf("read docx: %w", err)
	}

	count := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if paragraphText(para) != "" {
			count++
		}
	}
	return count, nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
