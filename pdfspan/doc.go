// Package pdfspan reads the text layer of a PDF file and exposes it as a
// span.Source for the outline pipeline.
//
// It parses each page's content stream directly, tracking the text state
// operators (Tf, Tm, Td, TD, TL, T*) so every shown string carries its font,
// effective size, and page position. Font resource names are resolved to
// base font names through the document's optimization tables, which is where
// bold and italic styling is recovered from.
//
// String operands are decoded as Latin-1 with standard PDF escape handling;
// fonts that require a ToUnicode CMap for correct text mapping are decoded
// best-effort.
package pdfspan
