package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// kernSpace is the TJ adjustment, in thousandths of a text space unit, at
// or below which a word gap is assumed.
const kernSpace = -200

type operandKind int

const (
	operandOther operandKind = iota
	operandString
	operandNumber
	operandArray
)

type operand struct {
	kind  operandKind
	str   []byte
	num   float64
	items []operand
}

// TextRuns returns the strings shown by the text operators Tj, TJ, ' and "
// of a page content stream, in stream order. A TJ array is one run; a large
// negative adjustment inside it becomes a space. Malformed input ends the
// scan and the runs found so far are returned.
func TextRuns(content []byte) []string {
	lx := &lexer{data: content}
	var runs []string
	var stack []operand

	for {
		tok, ok := lx.next()
		if !ok {
			return runs
		}
		switch tok.kind {
		case tokOperator:
			if run, shown := showText(tok.text, stack); shown {
				runs = append(runs, run)
			}
			if tok.text == "BI" {
				lx.skipInlineImage()
			}
			stack = stack[:0]
		case tokArrayEnd, tokDictEnd:
			// Unbalanced; ignore.
		default:
			op, ok := lx.operand(tok)
			if !ok {
				return runs
			}
			stack = append(stack, op)
		}
	}
}

// showText returns the run produced by a text showing operator.
func showText(op string, stack []operand) (string, bool) {
	if len(stack) == 0 {
		return "", false
	}
	last := stack[len(stack)-1]

	switch op {
	case "Tj", "'", "\"":
		if last.kind != operandString {
			return "", false
		}
		return decodeText(last.str), true
	case "TJ":
		if last.kind != operandArray {
			return "", false
		}
		var sb strings.Builder
		for _, item := range last.items {
			switch item.kind {
			case operandString:
				sb.WriteString(decodeText(item.str))
			case operandNumber:
				if item.num <= kernSpace && sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
					sb.WriteByte(' ')
				}
			}
		}
		return sb.String(), true
	}
	return "", false
}

// decodeText converts a PDF string to UTF-8. Strings with a UTF-16BE byte
// order mark are text strings; everything else is read as WinAnsi, the
// encoding of the standard fonts.
func decodeText(b []byte) string {
	var out []byte
	var err error
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		out, err = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(b)
	} else {
		out, err = charmap.Windows1252.NewDecoder().Bytes(b)
	}
	if err != nil {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' {
			return -1
		}
		return r
	}, string(out))
}

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokNumber
	tokName
	tokString
	tokArrayStart
	tokArrayEnd
	tokDictStart
	tokDictEnd
)

type token struct {
	kind tokenKind
	text string
	str  []byte
	num  float64
}

// lexer tokenises a content stream.
type lexer struct {
	data []byte
	pos  int
}

func isWhite(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// next returns the next token, or false at the end of input or on an
// unterminated string.
func (lx *lexer) next() (token, bool) {
	lx.skipSpace()
	if lx.pos >= len(lx.data) {
		return token{}, false
	}

	c := lx.data[lx.pos]
	switch {
	case c == '(':
		s, ok := lx.literal()
		return token{kind: tokString, str: s}, ok
	case c == '<' && lx.peek(1) == '<':
		lx.pos += 2
		return token{kind: tokDictStart}, true
	case c == '>' && lx.peek(1) == '>':
		lx.pos += 2
		return token{kind: tokDictEnd}, true
	case c == '<':
		s, ok := lx.hex()
		return token{kind: tokString, str: s}, ok
	case c == '[':
		lx.pos++
		return token{kind: tokArrayStart}, true
	case c == ']':
		lx.pos++
		return token{kind: tokArrayEnd}, true
	case c == '/':
		lx.pos++
		return token{kind: tokName, text: lx.regular()}, true
	case isDelim(c):
		// Stray ')', '>', '{' or '}'.
		lx.pos++
		return lx.next()
	}

	word := lx.regular()
	if n, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, num: n}, true
	}
	return token{kind: tokOperator, text: word}, true
}

// operand converts a token into an operand, reading nested arrays and
// dictionaries.
func (lx *lexer) operand(tok token) (operand, bool) {
	switch tok.kind {
	case tokString:
		return operand{kind: operandString, str: tok.str}, true
	case tokNumber:
		return operand{kind: operandNumber, num: tok.num}, true
	case tokArrayStart:
		arr := operand{kind: operandArray}
		for {
			t, ok := lx.next()
			if !ok {
				return arr, false
			}
			if t.kind == tokArrayEnd {
				return arr, true
			}
			item, ok := lx.operand(t)
			if !ok {
				return arr, false
			}
			arr.items = append(arr.items, item)
		}
	case tokDictStart:
		for {
			t, ok := lx.next()
			if !ok {
				return operand{}, false
			}
			if t.kind == tokDictEnd {
				return operand{kind: operandOther}, true
			}
			if _, ok := lx.operand(t); !ok {
				return operand{}, false
			}
		}
	}
	return operand{kind: operandOther}, true
}

func (lx *lexer) peek(offset int) byte {
	if lx.pos+offset < len(lx.data) {
		return lx.data[lx.pos+offset]
	}
	return 0
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		if c == '%' {
			for lx.pos < len(lx.data) && lx.data[lx.pos] != '\n' && lx.data[lx.pos] != '\r' {
				lx.pos++
			}
			continue
		}
		if !isWhite(c) {
			return
		}
		lx.pos++
	}
}

func (lx *lexer) regular() string {
	start := lx.pos
	for lx.pos < len(lx.data) && !isWhite(lx.data[lx.pos]) && !isDelim(lx.data[lx.pos]) {
		lx.pos++
	}
	return string(lx.data[start:lx.pos])
}

// literal reads a (string) with balanced parentheses and escapes.
func (lx *lexer) literal() ([]byte, bool) {
	lx.pos++ // (
	var out []byte
	depth := 1
	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		lx.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return out, true
			}
		case '\\':
			if lx.pos >= len(lx.data) {
				return out, false
			}
			c = lx.data[lx.pos]
			lx.pos++
			switch c {
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
			case '\r':
				if lx.peek(0) == '\n' {
					lx.pos++
				}
			case '\n':
				// Line continuation.
			default:
				if c >= '0' && c <= '7' {
					val := int(c - '0')
					for i := 0; i < 2 && lx.pos < len(lx.data); i++ {
						d := lx.data[lx.pos]
						if d < '0' || d > '7' {
							break
						}
						val = val*8 + int(d-'0')
						lx.pos++
					}
					out = append(out, byte(val))
				} else {
					out = append(out, c)
				}
			}
			continue
		}
		out = append(out, c)
	}
	return out, false
}

// hex reads a <hex string>; an odd final digit is padded with 0.
func (lx *lexer) hex() ([]byte, bool) {
	lx.pos++ // <
	var digits []byte
	for lx.pos < len(lx.data) {
		c := lx.data[lx.pos]
		lx.pos++
		if c == '>' {
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := range out {
				out[i] = unhex(digits[2*i])<<4 | unhex(digits[2*i+1])
			}
			return out, true
		}
		if isWhite(c) {
			continue
		}
		digits = append(digits, c)
	}
	return nil, false
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// skipInlineImage moves past the binary data of an inline image, which
// runs from the ID operator to a whitespace-delimited EI.
func (lx *lexer) skipInlineImage() {
	idx := bytes.Index(lx.data[lx.pos:], []byte("ID"))
	if idx < 0 {
		lx.pos = len(lx.data)
		return
	}
	lx.pos += idx + 2
	for lx.pos < len(lx.data) {
		idx := bytes.Index(lx.data[lx.pos:], []byte("EI"))
		if idx < 0 {
			lx.pos = len(lx.data)
			return
		}
		start := lx.pos + idx
		end := start + 2
		if start > 0 && isWhite(lx.data[start-1]) && (end == len(lx.data) || isWhite(lx.data[end])) {
			lx.pos = end
			return
		}
		lx.pos = end
	}
}
