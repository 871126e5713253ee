package codec

import "strings"

// line keeps the raw text of a document line together with its 1-based
// position so parse errors can point at the offending token.
type line struct {
	text   string
	number int
}

// section is the run of lines between one "## " heading and the next.
type section struct {
	name  string
	lines []line
}

// document is the line-oriented decomposition every parser works from:
// the "# " title plus the ordered sections.
type document struct {
	title    string
	sections []section
}

func (d document) section(name string) (section, bool) {
	for _, s := range d.sections {
		if s.name == name {
			return s, true
		}
	}
	return section{}, false
}

// bullets collects the "- " items of a list section. A section holding only
// the empty-list marker yields nil, keeping an empty list distinguishable
// from a parse failure.
func (s section) bullets(emptyMarker string) []string {
	var items []string
	for _, l := range s.lines {
		if strings.HasPrefix(l.text, bulletPrefix) {
			items = append(items, strings.TrimSpace(strings.TrimPrefix(l.text, bulletPrefix)))
			continue
		}
		if strings.TrimSpace(l.text) == emptyMarker {
			return nil
		}
	}
	return items
}

// firstContentLine returns the first non-blank line of the section.
func (s section) firstContentLine() (line, bool) {
	for _, l := range s.lines {
		if strings.TrimSpace(l.text) != "" {
			return l, true
		}
	}
	return line{}, false
}

// body joins a free-text section back together, trimmed of the blank lines
// the renderer adds around it.
func (s section) body() string {
	parts := make([]string, 0, len(s.lines))
	for _, l := range s.lines {
		parts = append(parts, l.text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// splitDocument breaks a Markdown document into its title and sections.
// The first "# " line wins as the title; later ones are treated as content.
func splitDocument(text string) document {
	var doc document
	var current *section

	for i, raw := range strings.Split(text, "\n") {
		l := line{text: raw, number: i + 1}

		if doc.title == "" && current == nil && strings.HasPrefix(raw, titlePrefix) {
			doc.title = strings.TrimSpace(strings.TrimPrefix(raw, titlePrefix))
			continue
		}

		if strings.HasPrefix(raw, sectionPrefix) {
			doc.sections = append(doc.sections, section{
				name: strings.TrimSpace(strings.TrimPrefix(raw, sectionPrefix)),
			})
			current = &doc.sections[len(doc.sections)-1]
			continue
		}

		// Blank lines stay: free-text bodies may contain paragraph breaks.
		if current != nil {
			current.lines = append(current.lines, l)
		}
	}

	return doc
}

// splitDetail parses a "  - key: value" sub-bullet.
func splitDetail(text string) (key, value string, ok bool) {
	rest := strings.TrimPrefix(text, subBulletPrefix)
	key, value, ok = strings.Cut(rest, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
