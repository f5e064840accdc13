package pdfreader

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"taxmaster/statement-extractor/internal/extracterror"

	"github.com/ledongthuc/pdf"
)

// wordGapFactor decides when two text runs on the same baseline belong to the
// same word: the gap must stay below this fraction of the font size.
const wordGapFactor = 0.3

// yEpsilon treats runs whose baselines differ by less than this as being on
// the same line when merging runs into words.
const yEpsilon = 0.5

// LayoutExtractor is the production Extractor. It reads the PDF content
// streams and merges adjacent text runs into word fragments.
type LayoutExtractor struct{}

// NewLayoutExtractor creates the production extractor.
func NewLayoutExtractor() *LayoutExtractor {
	return &LayoutExtractor{}
}

// Extract implements Extractor. Fragments come back page-ascending and, within
// a page, top-to-bottom then left-to-right.
func (e *LayoutExtractor) Extract(data []byte) (frags []Fragment, err error) {
	// The PDF library panics on some malformed cross-reference tables
	// instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = &extracterror.UnreadablePDFError{
				Reason: "corrupted document",
				Err:    fmt.Errorf("parser panic: %v", r),
			}
		}
	}()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, &extracterror.UnreadablePDFError{
			Reason: "not a PDF document",
		}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		reason := "corrupted document"
		if strings.Contains(strings.ToLower(err.Error()), "encrypt") {
			reason = "encrypted document"
		}
		return nil, &extracterror.UnreadablePDFError{Reason: reason, Err: err}
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		frags = append(frags, pageFragments(pageNum, page.Content().Text)...)
	}

	if len(frags) == 0 {
		return nil, &extracterror.UnreadablePDFError{
			Reason: "no extractable text; the document may be a scanned image without an OCR layer",
		}
	}

	return frags, nil
}

// pageFragments merges the raw text runs of one page into word fragments.
func pageFragments(pageNum int, texts []pdf.Text) []Fragment {
	if len(texts) == 0 {
		return nil
	}

	// Top-to-bottom (Y descending in PDF space), then left-to-right.
	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	var frags []Fragment
	var sb strings.Builder
	cur := Fragment{Page: pageNum, X: texts[0].X, Y: texts[0].Y}
	end := texts[0].X + texts[0].W
	sb.WriteString(texts[0].S)

	flush := func() {
		cur.XEnd = end
		cur.Text = strings.TrimSpace(sb.String())
		if cur.Text != "" {
			frags = append(frags, cur)
		}
		sb.Reset()
	}

	for _, t := range texts[1:] {
		sameLine := abs(t.Y-cur.Y) < yEpsilon
		gap := t.X - end
		maxGap := t.FontSize * wordGapFactor
		if maxGap <= 0 {
			maxGap = 2
		}

		if sameLine && gap <= maxGap {
			sb.WriteString(t.S)
			end = t.X + t.W
			continue
		}

		flush()
		cur = Fragment{Page: pageNum, X: t.X, Y: t.Y}
		end = t.X + t.W
		sb.WriteString(t.S)
	}
	flush()

	return frags
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
