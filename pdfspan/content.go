package pdfspan

import (
	"math"
	"strconv"
	"strings"

	"github.com/doctrail/outliner/span"
)

// fontInfo is the resolved styling for one font resource name.
type fontInfo struct {
	name   string
	bold   bool
	italic bool
}

var styleBoldTokens = []string{"bold", "black", "heavy", "semibold", "demibold", "extrabold"}

// fontInfoFromName derives style flags from a base font name, after
// stripping any subset prefix (e.g. "ABCDEF+Times-Bold").
func fontInfoFromName(name string) fontInfo {
	base := name
	if i := strings.IndexByte(base, '+'); i == 6 {
		base = base[i+1:]
	}
	lower := strings.ToLower(base)
	info := fontInfo{name: base}
	for _, tok := range styleBoldTokens {
		if strings.Contains(lower, tok) {
			info.bold = true
			break
		}
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		info.italic = true
	}
	return info
}

// matrix is a PDF transformation matrix [a b c d e f].
type matrix struct {
	a, b, c, d, e, f float64
}

var identityMatrix = matrix{a: 1, d: 1}

// preTranslate applies a translation before m, as the Td operator does to
// the text line matrix.
func (m matrix) preTranslate(tx, ty float64) matrix {
	return matrix{
		a: m.a, b: m.b, c: m.c, d: m.d,
		e: tx*m.a + ty*m.c + m.e,
		f: tx*m.b + ty*m.d + m.f,
	}
}

// yScale is the vertical scaling the matrix applies, used to turn the
// nominal Tf size into an effective rendered size.
func (m matrix) yScale() float64 {
	s := math.Hypot(m.c, m.d)
	if s == 0 {
		return 1
	}
	return s
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokArrayStart
	tokArrayEnd
	tokOperator
)

type token struct {
	kind tokenKind
	num  float64
	str  []byte
	name string
	op   string
}

// lexer tokenizes a PDF content stream.
type lexer struct {
	data []byte
	pos  int
}

func isPDFWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isPDFDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// next returns the next token, or ok=false at end of stream.
func (l *lexer) next() (token, bool) {
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		switch {
		case isPDFWhitespace(b):
			l.pos++
		case b == '%':
			l.skipComment()
		case b == '(':
			l.pos++
			return token{kind: tokString, str: l.readLiteralString()}, true
		case b == '<':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
				l.pos += 2 // dict start, operand we discard
				return l.next()
			}
			l.pos++
			return token{kind: tokString, str: l.readHexString()}, true
		case b == '>':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '>' {
				l.pos += 2
				return l.next()
			}
			l.pos++
		case b == '[':
			l.pos++
			return token{kind: tokArrayStart}, true
		case b == ']':
			l.pos++
			return token{kind: tokArrayEnd}, true
		case b == '{' || b == '}':
			l.pos++
		case b == '/':
			l.pos++
			return token{kind: tokName, name: l.readRegular()}, true
		case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
			raw := l.readRegular()
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return l.next()
			}
			return token{kind: tokNumber, num: n}, true
		default:
			op := l.readOperator()
			if op == "" {
				l.pos++
				continue
			}
			if op == "ID" {
				// Inline image data follows; skip to the closing EI.
				l.skipInlineImage()
				return l.next()
			}
			return token{kind: tokOperator, op: op}, true
		}
	}
	return token{}, false
}

func (l *lexer) skipComment() {
	for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
		l.pos++
	}
}

// readLiteralString consumes a (...) string body, handling nested parens
// and backslash escapes, and returns the decoded bytes.
func (l *lexer) readLiteralString() []byte {
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		switch b {
		case '\\':
			l.pos++
			if l.pos >= len(l.data) {
				return out
			}
			e := l.data[l.pos]
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '(', ')', '\\':
				out = append(out, e)
			case '\n':
				// line continuation, no output
			case '\r':
				if l.pos+1 < len(l.data) && l.data[l.pos+1] == '\n' {
					l.pos++
				}
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && l.pos+1 < len(l.data); k++ {
						nb := l.data[l.pos+1]
						if nb < '0' || nb > '7' {
							break
						}
						l.pos++
						val = val*8 + int(nb-'0')
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
			l.pos++
		case '(':
			depth++
			out = append(out, b)
			l.pos++
		case ')':
			depth--
			if depth == 0 {
				l.pos++
				return out
			}
			out = append(out, b)
			l.pos++
		default:
			out = append(out, b)
			l.pos++
		}
	}
	return out
}

// readHexString consumes a <...> string body and returns the decoded bytes.
func (l *lexer) readHexString() []byte {
	var out []byte
	var hi byte
	have := false
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		l.pos++
		if b == '>' {
			break
		}
		v, ok := hexVal(b)
		if !ok {
			continue
		}
		if have {
			out = append(out, hi<<4|v)
			have = false
		} else {
			hi = v
			have = true
		}
	}
	if have {
		// odd digit count: final digit is the high nibble
		out = append(out, hi<<4)
	}
	return out
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// readRegular consumes a run of regular (non-delimiter, non-whitespace)
// characters.
func (l *lexer) readRegular() string {
	start := l.pos
	for l.pos < len(l.data) && !isPDFWhitespace(l.data[l.pos]) && !isPDFDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// readOperator consumes an operator token. The ' and " show-text operators
// are single characters; everything else is a regular-character run.
func (l *lexer) readOperator() string {
	b := l.data[l.pos]
	if b == '\'' || b == '"' {
		l.pos++
		return string(b)
	}
	return l.readRegular()
}

// skipInlineImage advances past inline image data to just after the EI
// marker.
func (l *lexer) skipInlineImage() {
	for l.pos+1 < len(l.data) {
		if l.data[l.pos] == 'E' && l.data[l.pos+1] == 'I' &&
			(l.pos == 0 || isPDFWhitespace(l.data[l.pos-1])) &&
			(l.pos+2 >= len(l.data) || isPDFWhitespace(l.data[l.pos+2])) {
			l.pos += 2
			return
		}
		l.pos++
	}
	l.pos = len(l.data)
}

// interpreter tracks PDF text state across one content stream.
type interpreter struct {
	page       int
	pageHeight float64
	fonts      map[string]fontInfo

	tm       matrix // text matrix
	tlm      matrix // text line matrix
	fontSize float64
	font     fontInfo
	leading  float64

	spans []span.TextSpan
}

// parseContent interprets the text operators of one page's content stream
// and returns the spans it shows, in stream order.
func parseContent(data []byte, page int, pageHeight float64, fonts map[string]fontInfo) []span.TextSpan {
	in := &interpreter{
		page:       page,
		pageHeight: pageHeight,
		fonts:      fonts,
		tm:         identityMatrix,
		tlm:        identityMatrix,
	}
	in.run(&lexer{data: data})
	return in.spans
}

func (in *interpreter) run(lx *lexer) {
	var nums []float64
	var strs [][]byte
	var names []string
	inArray := false

	reset := func() {
		nums = nums[:0]
		strs = strs[:0]
		names = names[:0]
	}

	for {
		tok, ok := lx.next()
		if !ok {
			return
		}
		switch tok.kind {
		case tokNumber:
			nums = append(nums, tok.num)
		case tokString:
			strs = append(strs, tok.str)
		case tokName:
			names = append(names, tok.name)
		case tokArrayStart:
			inArray = true
		case tokArrayEnd:
			inArray = false
		case tokOperator:
			if inArray {
				// malformed stream; drop out of array mode
				inArray = false
			}
			in.apply(tok.op, nums, strs, names)
			reset()
		}
	}
}

func (in *interpreter) apply(op string, nums []float64, strs [][]byte, names []string) {
	switch op {
	case "BT":
		in.tm = identityMatrix
		in.tlm = identityMatrix
	case "ET":
		// text object closed; state persists for Tf across objects
	case "Tf":
		if len(names) > 0 && len(nums) > 0 {
			in.font = in.fonts[names[len(names)-1]]
			in.fontSize = nums[len(nums)-1]
		}
	case "TL":
		if len(nums) > 0 {
			in.leading = nums[len(nums)-1]
		}
	case "Tm":
		if len(nums) >= 6 {
			n := nums[len(nums)-6:]
			in.tlm = matrix{a: n[0], b: n[1], c: n[2], d: n[3], e: n[4], f: n[5]}
			in.tm = in.tlm
		}
	case "Td":
		if len(nums) >= 2 {
			in.nextLine(nums[len(nums)-2], nums[len(nums)-1])
		}
	case "TD":
		if len(nums) >= 2 {
			in.leading = -nums[len(nums)-1]
			in.nextLine(nums[len(nums)-2], nums[len(nums)-1])
		}
	case "T*":
		in.nextLine(0, -in.leading)
	case "Tj", "TJ":
		in.show(strs)
	case "'":
		in.nextLine(0, -in.leading)
		in.show(strs)
	case "\"":
		in.nextLine(0, -in.leading)
		in.show(strs)
	}
}

func (in *interpreter) nextLine(tx, ty float64) {
	in.tlm = in.tlm.preTranslate(tx, ty)
	in.tm = in.tlm
}

// show emits one span for the string operands of a show-text operator. TJ
// arrays collapse to a single span since the interleaved numbers only adjust
// glyph spacing.
func (in *interpreter) show(strs [][]byte) {
	if len(strs) == 0 {
		return
	}
	var sb strings.Builder
	for _, s := range strs {
		sb.WriteString(decodeLatin1(s))
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return
	}
	size := in.fontSize * in.tm.yScale()
	in.spans = append(in.spans, span.TextSpan{
		Text:     text,
		FontSize: size,
		FontName: in.font.name,
		Bold:     in.font.bold,
		Italic:   in.font.italic,
		Page:     in.page,
		Y:        in.pageHeight - in.tm.f,
		X:        in.tm.e,
	})
}

// decodeLatin1 maps string bytes to runes one-for-one, dropping control
// characters other than horizontal whitespace.
func decodeLatin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < 0x20 && c != '\t' {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
