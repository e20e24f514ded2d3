package compiler

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrStyleParse = errors.New("malformed static style")
	ErrNoTemplate = errors.New("component has no template root")
	ErrNotRoot    = errors.New("template root has a parent")
)

// StyleParseError reports a static style literal that is not a JSON object
// of scalar values. It aborts the compile of the whole component.
type StyleParseError struct {
	Tag     string
	Literal string
	Err     error
}

func (e *StyleParseError) Error() string {
	return fmt.Sprintf("<%s> style %q: %v", e.Tag, e.Literal, e.Err)
}

// Unwrap makes errors.Is(err, ErrStyleParse) hold.
func (e *StyleParseError) Unwrap() []error {
	return []error{ErrStyleParse, e.Err}
}

// UnmappedTagWarning records a tag rendered with the fallback sentinel.
type UnmappedTagWarning struct {
	Tag string
}

func (w *UnmappedTagWarning) Error() string {
	return fmt.Sprintf("tag <%s> has no Doric mapping", w.Tag)
}

// DroppedAttributeWarning records an attribute that could not be expressed
// on the target element.
type DroppedAttributeWarning struct {
	Tag    string
	Attr   string
	Reason string
}

func (w *DroppedAttributeWarning) Error() string {
	return fmt.Sprintf("<%s> attribute %q dropped: %s", w.Tag, w.Attr, w.Reason)
}

// DirectiveConflictWarning records a v-for ignored because the same element
// carries a v-if.
type DirectiveConflictWarning struct {
	Tag string
}

func (w *DirectiveConflictWarning) Error() string {
	return fmt.Sprintf("<%s> has both v-if and v-for; v-for ignored", w.Tag)
}
