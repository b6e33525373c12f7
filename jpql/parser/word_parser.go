package parser

import "strings"

// WordType classifies the word at the cursor.
type WordType int

const (
	WordTypeWord WordType = iota
	WordTypeNumericLiteral
	WordTypeStringLiteral
	WordTypeInputParameter
	WordTypeOperator
	WordTypeEnd
)

// WordParser is a cursor over the query text. The text never changes; only
// the position moves. Callers that need to backtrack record positions and
// move back themselves.
type WordParser struct {
	text string
	pos  int
}

func NewWordParser(text string) *WordParser {
	return &WordParser{text: text}
}

func (wp *WordParser) Text() string {
	return wp.text
}

func (wp *WordParser) Length() int {
	return len(wp.text)
}

func (wp *WordParser) Position() int {
	return wp.pos
}

func (wp *WordParser) SetPosition(pos int) {
	wp.pos = clamp(pos, 0, len(wp.text))
}

// IsTail reports whether the cursor reached the end of the text.
func (wp *WordParser) IsTail() bool {
	return wp.pos >= len(wp.text)
}

// Character returns the byte at the cursor, or 0 at the end of the text.
func (wp *WordParser) Character() byte {
	return wp.CharacterAt(wp.pos)
}

func (wp *WordParser) CharacterAt(pos int) byte {
	if pos < 0 || pos >= len(wp.text) {
		return 0
	}
	return wp.text[pos]
}

func (wp *WordParser) Substring(from, to int) string {
	from = clamp(from, 0, len(wp.text))
	to = clamp(to, from, len(wp.text))
	return wp.text[from:to]
}

// MoveForward advances the cursor by n bytes and returns the text moved over.
func (wp *WordParser) MoveForward(n int) string {
	start := wp.pos
	wp.SetPosition(wp.pos + n)
	return wp.text[start:wp.pos]
}

func (wp *WordParser) MoveForwardWord(word string) string {
	return wp.MoveForward(len(word))
}

func (wp *WordParser) MoveBackward(n int) {
	wp.SetPosition(wp.pos - n)
}

// SkipLeadingWhitespace moves past the whitespace at the cursor and returns
// how many bytes were skipped.
func (wp *WordParser) SkipLeadingWhitespace() int {
	n := wp.whitespaceCount(wp.pos)
	wp.pos += n
	return n
}

// Whitespace consumes the whitespace run at the cursor and returns it.
func (wp *WordParser) Whitespace() string {
	start := wp.pos
	wp.SkipLeadingWhitespace()
	return wp.text[start:wp.pos]
}

func (wp *WordParser) whitespaceCount(pos int) int {
	n := 0
	for pos+n < len(wp.text) && isWhitespace(wp.text[pos+n]) {
		n++
	}
	return n
}

func (wp *WordParser) StartsWith(prefix string) bool {
	return strings.HasPrefix(wp.text[wp.pos:], prefix)
}

func (wp *WordParser) StartsWithIgnoreCase(prefix string) bool {
	rest := wp.text[wp.pos:]
	return len(rest) >= len(prefix) && strings.EqualFold(rest[:len(prefix)], prefix)
}

// StartsWithIdentifier reports whether the identifier, which may span several
// words, starts at the cursor. Words are compared case-insensitively and may
// be separated by any whitespace.
func (wp *WordParser) StartsWithIdentifier(identifier string) bool {
	return wp.identifierEnd(wp.pos, identifier) >= 0
}

// identifierEnd returns the position after identifier when it starts at pos,
// or -1.
func (wp *WordParser) identifierEnd(pos int, identifier string) int {
	for i, part := range strings.Fields(identifier) {
		if i > 0 {
			n := wp.whitespaceCount(pos)
			if n == 0 {
				return -1
			}
			pos += n
		}
		end := wp.WordEndPosition(pos)
		if end == pos || !strings.EqualFold(wp.text[pos:end], part) {
			return -1
		}
		pos = end
	}
	return pos
}

// Word returns the word at the cursor without moving it. The word is empty
// at the end of the text or when the cursor is on whitespace.
func (wp *WordParser) Word() string {
	return wp.text[wp.pos:wp.WordEndPosition(wp.pos)]
}

// WordEndPosition returns the end of the word starting at pos.
func (wp *WordParser) WordEndPosition(pos int) int {
	if pos >= len(wp.text) {
		return len(wp.text)
	}
	c := wp.text[pos]
	switch {
	case isWhitespace(c):
		return pos
	case c == '\'' || c == '"':
		return wp.stringLiteralEnd(pos)
	case c == '(' || c == ')' || c == ',' || c == '=' || c == '+' || c == '-' || c == '*' || c == '/':
		return pos + 1
	case c == '<':
		if next := wp.CharacterAt(pos + 1); next == '=' || next == '>' {
			return pos + 2
		}
		return pos + 1
	case c == '>' || c == '!':
		if wp.CharacterAt(pos+1) == '=' {
			return pos + 2
		}
		return pos + 1
	case c == ':' || c == '?':
		end := pos + 1
		for end < len(wp.text) && isIdentifierPart(wp.text[end]) && wp.text[end] != '.' {
			end++
		}
		return end
	}
	end := pos
	for end < len(wp.text) && !isDelimiter(wp.text[end]) {
		end++
	}
	if end == pos {
		return pos + 1
	}
	return end
}

func (wp *WordParser) stringLiteralEnd(pos int) int {
	quote := wp.text[pos]
	for i := pos + 1; i < len(wp.text); i++ {
		if wp.text[i] != quote {
			continue
		}
		if wp.CharacterAt(i+1) == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(wp.text)
}

// WordType classifies the word at the cursor.
func (wp *WordParser) WordType() WordType {
	if wp.IsTail() {
		return WordTypeEnd
	}
	c := wp.Character()
	switch {
	case c == '\'' || c == '"':
		return WordTypeStringLiteral
	case c == ':' || c == '?':
		return WordTypeInputParameter
	case isDigit(c), c == '.' && isDigit(wp.CharacterAt(wp.pos+1)):
		return WordTypeNumericLiteral
	case isOperator(c):
		return WordTypeOperator
	}
	return WordTypeWord
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperator(c byte) bool {
	switch c {
	case '=', '<', '>', '!', '+', '-', '*', '/':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	if isWhitespace(c) || isOperator(c) {
		return true
	}
	switch c {
	case '(', ')', ',', '\'', '"', ':', '?', ';', '{', '}', '[', ']':
		return true
	}
	return false
}

// isIdentifierStart accepts bytes of multi-byte UTF-8 sequences so that
// non-ASCII names stay whole.
func isIdentifierStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentifierPart(c byte) bool {
	return isIdentifierStart(c) || isDigit(c) || c == '.'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
