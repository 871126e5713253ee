// Package codec converts meeting records and task batches to a fixed
// Markdown layout for human review, and parses edited Markdown back into
// structured records.
//
// The grammar is deliberately small and line-oriented:
//
//	# <title>                  top-level title, exactly one
//	## <section>               sections in a fixed per-kind order
//	- <item>                   one bullet per list element
//	- [ ] <item> / - [x] <item>  checkbox bullets for completable items
//	  - <key>: <value>         labeled sub-bullets in a fixed key order
//
// Empty list sections render a literal "none" marker ("unknown" for
// participants) instead of being omitted, so an empty list stays
// distinguishable from a missing section. Lines inside a section that match
// none of the grammar prefixes are ignored by the parser; content that
// itself contains the heading or bullet prefixes (for example a merged
// source quote spanning several lines) is therefore flattened on a
// round-trip. That is the one accepted lossy edge of the layout.
package codec

import "fmt"

const (
	titlePrefix     = "# "
	sectionPrefix   = "## "
	bulletPrefix    = "- "
	subBulletPrefix = "  - "

	checkboxOpen = "[ ] "
	checkboxDone = "[x] "

	markerNone    = "none"
	markerUnknown = "unknown"

	dateLayout    = "2006-01-02 15:04"
	dueDateLayout = "2006-01-02"
)

// FormatError reports why a Markdown document could not be reconstructed
// into a record. It is always surfaced to the caller, never repaired.
type FormatError struct {
	// Section is the section the error belongs to ("" for document-level).
	Section string
	// Value is the offending token, when one exists.
	Value string
	// Line is the 1-based line number of the offending token, 0 if unknown.
	Line int
	// Reason is a short human-readable explanation.
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Value != "" && e.Line > 0:
		return fmt.Sprintf("format error in section %q at line %d: %s (%q)", e.Section, e.Line, e.Reason, e.Value)
	case e.Section != "":
		return fmt.Sprintf("format error in section %q: %s", e.Section, e.Reason)
	default:
		return fmt.Sprintf("format error: %s", e.Reason)
	}
}

func missingSection(name string) *FormatError {
	return &FormatError{Section: name, Reason: "required section is missing"}
}
