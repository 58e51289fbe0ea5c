package pdftext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

type stubRunner struct {
	out, errb []byte
	err       error
	name      string
	args      []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.name = name
	s.args = args
	return s.out, s.errb, s.err
}

func writePDF(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestPdftotext_JoinsPages(t *testing.T) {
	r := &stubRunner{out: []byte("Name: Alice.\fAge: 30.\f")}
	e := NewExtractor(Config{Method: MethodPdftotext, MaxPages: 2}, nil).WithRunner(r)
	path := writePDF(t, "%PDF-1.4")

	res, err := e.ExtractFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Name: Alice.Age: 30.", res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, MethodPdftotext, res.Method)
	assert.Equal(t, "pdftotext", r.name)
	assert.Equal(t, []string{"-enc", "UTF-8", "-eol", "unix", "-l", "2", path, "-"}, r.args)
}

func TestPdftotext_Failure(t *testing.T) {
	r := &stubRunner{errb: []byte("Syntax Error: Couldn't find trailer dictionary"), err: errors.New("exit status 1")}
	e := NewExtractor(Config{Method: MethodPdftotext}, nil).WithRunner(r)

	res, err := e.ExtractFile(context.Background(), writePDF(t, "garbage"))

	require.Error(t, err)
	assert.Equal(t, common.KindFileIO, common.KindOf(err))
	assert.Contains(t, res.Warnings, "Syntax Error: Couldn't find trailer dictionary")
}

func TestPdftotext_ExtractBytesUsesTempFile(t *testing.T) {
	r := &stubRunner{out: []byte("hello")}
	e := NewExtractor(Config{Method: MethodPdftotext}, nil).WithRunner(r)

	res, err := e.ExtractBytes(context.Background(), []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text)
	tmp := r.args[len(r.args)-2]
	_, statErr := os.Stat(tmp)
	assert.True(t, os.IsNotExist(statErr), "temp file is removed")
}

func TestNative_RejectsNonPDF(t *testing.T) {
	e := NewExtractor(Config{}, nil)

	_, err := e.ExtractBytes(context.Background(), []byte("this is not a pdf"))

	require.Error(t, err)
	assert.Equal(t, common.KindFileIO, common.KindOf(err))
}

func TestExtractFile_Missing(t *testing.T) {
	for _, method := range []string{MethodNative, MethodPdftotext} {
		t.Run(method, func(t *testing.T) {
			e := NewExtractor(Config{Method: method}, nil).WithRunner(&stubRunner{})

			_, err := e.ExtractFile(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))

			require.Error(t, err)
			assert.Equal(t, common.KindFileIO, common.KindOf(err))
		})
	}
}

func TestExtractFile_UnknownMethod(t *testing.T) {
	e := NewExtractor(Config{Method: "ocr"}, nil)

	_, err := e.ExtractFile(context.Background(), "x.pdf")

	assert.Equal(t, common.KindConfig, common.KindOf(err))
}
