// Package pdfreader extracts positioned text fragments from PDF bank
// statements. It is a pure read/transform step: bytes in, ordered fragments
// out, with UnreadablePDFError for anything that cannot be read.
package pdfreader

// Fragment is one word-level run of text with its position on the page.
// Coordinates are PDF points with the origin at the bottom-left corner, so
// larger Y means higher on the page.
type Fragment struct {
	Page int
	X    float64
	XEnd float64
	Y    float64
	Text string
}

// Center returns the horizontal midpoint of the fragment, which is what the
// column calibration works with.
func (f Fragment) Center() float64 {
	return (f.X + f.XEnd) / 2
}

// Extractor turns raw document bytes into positioned fragments. The real
// implementation wraps the PDF library; tests inject synthetic fragments.
type Extractor interface {
	Extract(data []byte) ([]Fragment, error)
}
