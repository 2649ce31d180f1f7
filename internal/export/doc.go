// Package export serializes a rendered report into downloadable documents.
// It only formats; every number it writes was computed before it was called.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/internal/report"
)

// Content types of the artifacts
const (
	DocContentType  = "application/msword;charset=utf-8"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// utf8BOM makes Word pick the right encoding when it opens the HTML payload
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Filename returns "<stem><ext>", using the default stem when stem is empty
func Filename(stem, ext string) string {
	if stem == "" {
		stem = constants.DefaultReportFilename
	}
	return stem + ext
}

// WriteDoc writes the Word-compatible report: a BOM followed by a standalone HTML page
func WriteDoc(w io.Writer, doc *report.Document) error {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	if err := report.RenderPage(&buf, doc); err != nil {
		return fmt.Errorf("error rendering report page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
