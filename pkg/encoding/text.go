// Package encoding provides text decoding for level data files.
//
// The extraction tools that produce model.obj and the transparency table run
// on Windows and sometimes write a byte order mark, or UTF-16 when a table is
// edited by hand in Notepad. Readers returned here hide both cases.
package encoding

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewTextReader wraps r so that a leading UTF-8 or UTF-16 BOM is consumed and
// UTF-16 input is transcoded to UTF-8. Input without a BOM passes through.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}
