package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

// extractNative concatenates page text in page order with no separator.
func (e *Extractor) extractNative(data []byte) (res Result, err error) {
	res.Method = MethodNative

	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = common.NewKindError(common.KindFileIO, "unreadable PDF", fmt.Errorf("%v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return res, common.NewKindError(common.KindFileIO, "unreadable PDF", err)
	}

	total := r.NumPage()
	n := total
	if e.cfg.MaxPages > 0 && e.cfg.MaxPages < total {
		n = e.cfg.MaxPages
		res.Warnings = append(res.Warnings, fmt.Sprintf("only first %d of %d pages read", n, total))
	}

	var b strings.Builder
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		txt, perr := p.GetPlainText(nil)
		if perr != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, perr))
			continue
		}
		b.WriteString(txt)
	}
	res.Text = b.String()
	res.Pages = n
	return res, nil
}
