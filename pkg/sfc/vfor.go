package sfc

import (
	"fmt"
	"strings"

	"github.com/recera/vue2doric/pkg/source"
)

// ParseFor parses a v-for value: `item in list`, `item of list`,
// `(item, index) in list`.
func ParseFor(value string) (*source.Iteration, error) {
	c := &cursor{input: strings.TrimSpace(value)}
	it := &source.Iteration{}

	if c.consume("(") {
		c.skipWhitespace()
		if it.Alias = c.parseIdentifier(); it.Alias == "" {
			return nil, fmt.Errorf("%q: expected item alias: %w", value, ErrInvalidFor)
		}
		c.skipWhitespace()
		if c.consume(",") {
			c.skipWhitespace()
			if it.Index = c.parseIdentifier(); it.Index == "" {
				return nil, fmt.Errorf("%q: expected index alias: %w", value, ErrInvalidFor)
			}
			c.skipWhitespace()
		}
		if !c.consume(")") {
			return nil, fmt.Errorf("%q: expected ): %w", value, ErrInvalidFor)
		}
	} else if it.Alias = c.parseIdentifier(); it.Alias == "" {
		return nil, fmt.Errorf("%q: expected item alias: %w", value, ErrInvalidFor)
	}

	c.skipWhitespace()
	if !c.consume("in") && !c.consume("of") {
		return nil, fmt.Errorf("%q: expected in or of: %w", value, ErrInvalidFor)
	}
	if rest := c.rest(); rest == "" || !strings.ContainsAny(rest[:1], " \t\r\n") {
		return nil, fmt.Errorf("%q: expected whitespace after in: %w", value, ErrInvalidFor)
	}
	if it.Source = strings.TrimSpace(c.rest()); it.Source == "" {
		return nil, fmt.Errorf("%q: expected source expression: %w", value, ErrInvalidFor)
	}
	return it, nil
}
