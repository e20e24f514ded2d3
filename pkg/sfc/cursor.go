package sfc

import "unicode"

// cursor is a forward-only reader over a directive or text value.
type cursor struct {
	input string
	pos   int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.input)
}

func (c *cursor) peek(s string) bool {
	if c.pos+len(s) > len(c.input) {
		return false
	}
	return c.input[c.pos:c.pos+len(s)] == s
}

func (c *cursor) consume(s string) bool {
	if c.peek(s) {
		c.pos += len(s)
		return true
	}
	return false
}

func (c *cursor) skipWhitespace() {
	for c.pos < len(c.input) && unicode.IsSpace(rune(c.input[c.pos])) {
		c.pos++
	}
}

// parseUntil returns the text up to delimiter, or the rest of the input
// when the delimiter never occurs. The delimiter is not consumed.
func (c *cursor) parseUntil(delimiter string) string {
	start := c.pos
	for c.pos < len(c.input) {
		if c.peek(delimiter) {
			return c.input[start:c.pos]
		}
		c.pos++
	}
	return c.input[start:c.pos]
}

func (c *cursor) parseIdentifier() string {
	start := c.pos
	for c.pos < len(c.input) {
		ch := rune(c.input[c.pos])
		if ch == '_' || ch == '$' || unicode.IsLetter(ch) || (c.pos > start && unicode.IsDigit(ch)) {
			c.pos++
			continue
		}
		break
	}
	return c.input[start:c.pos]
}

func (c *cursor) rest() string {
	return c.input[c.pos:]
}
