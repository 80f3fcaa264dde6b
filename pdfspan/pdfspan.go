package pdfspan

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/doctrail/outliner/span"
)

// defaultPageHeight is used when a page's media box cannot be read
// (US Letter, in points).
const defaultPageHeight = 792.0

// Document is a parsed PDF exposing its text layer as spans. It implements
// span.Source.
type Document struct {
	ctx *model.Context
}

// Open reads and validates the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return New(f)
}

// New reads and validates a PDF from rs.
func New(rs io.ReadSeeker) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	if d == nil || d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// Spans extracts the document's text spans in page order. Pages whose
// content stream cannot be read are skipped rather than failing the whole
// document.
func (d *Document) Spans(ctx context.Context) ([]span.TextSpan, error) {
	if d == nil || d.ctx == nil {
		return nil, fmt.Errorf("pdfspan: document not loaded")
	}
	heights := d.pageHeights()
	var spans []span.TextSpan
	for pageNr := 1; pageNr <= d.ctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := pdfcpu.ExtractPageContent(d.ctx, pageNr)
		if err != nil || r == nil {
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil || len(data) == 0 {
			continue
		}
		h := defaultPageHeight
		if pageNr-1 < len(heights) && heights[pageNr-1] > 0 {
			h = heights[pageNr-1]
		}
		spans = append(spans, parseContent(data, pageNr-1, h, d.pageFonts(pageNr))...)
	}
	return spans, nil
}

// pageHeights returns the media box height of each page, indexed by 0-based
// page number.
func (d *Document) pageHeights() []float64 {
	dims, err := d.ctx.PageDims()
	if err != nil {
		return nil
	}
	heights := make([]float64, len(dims))
	for i, dim := range dims {
		heights[i] = dim.Height
	}
	return heights
}

// pageFonts resolves the page's font resource names to base font names via
// the optimization tables built during load.
func (d *Document) pageFonts(pageNr int) map[string]fontInfo {
	fonts := make(map[string]fontInfo)
	opt := d.ctx.Optimize
	if opt == nil || pageNr-1 >= len(opt.PageFonts) {
		return fonts
	}
	for objNr, used := range opt.PageFonts[pageNr-1] {
		if !used {
			continue
		}
		fo := opt.FontObjects[objNr]
		if fo == nil {
			continue
		}
		info := fontInfoFromName(fo.FontName)
		for _, res := range fo.ResourceNames {
			fonts[res] = info
		}
	}
	return fonts
}
