// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package roadmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// indentWidth is the number of spaces per nesting level.
const indentWidth = 2

var (
	checkboxRe = regexp.MustCompile(`^- \[([ xX])\] (.*)$`)
	linkRe     = regexp.MustCompile(`\[([^\]]+)\]\(([^)]*)\)`)
)

// Parse reads a roadmap document. It expects one `# Title` heading
// followed by checkbox items nested by two-space indentation. CRLF line
// endings are accepted; tabs in indentation are not.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	// stack[d] is the most recent item at depth d.
	var stack []*Item

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if doc.Title == "" {
			title, ok := strings.CutPrefix(line, "# ")
			if !ok {
				return nil, fmt.Errorf("roadmap: line %d: expected `# Title` heading, got %q", lineno, line)
			}
			doc.Title = strings.TrimSpace(title)
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))
		body := line[indent:]
		if strings.HasPrefix(body, "\t") {
			return nil, fmt.Errorf("roadmap: line %d: tab indentation is not allowed", lineno)
		}
		if indent%indentWidth != 0 {
			return nil, fmt.Errorf("roadmap: line %d: indentation of %d spaces is not a multiple of %d", lineno, indent, indentWidth)
		}
		depth := indent / indentWidth

		m := checkboxRe.FindStringSubmatch(body)
		if m == nil {
			return nil, fmt.Errorf("roadmap: line %d: list item must match `- [ ]` or `- [x]`, got %q", lineno, body)
		}
		text := strings.TrimSpace(m[2])
		if text == "" {
			return nil, fmt.Errorf("roadmap: line %d: empty item text", lineno)
		}
		if depth > len(stack) {
			return nil, fmt.Errorf("roadmap: line %d: item skips from depth %d to %d", lineno, len(stack)-1, depth)
		}

		item := &Item{
			Text:  text,
			Done:  m[1] != " ",
			Depth: depth,
			Links: parseLinks(text),
		}
		if depth == 0 {
			doc.Items = append(doc.Items, item)
		} else {
			parent := stack[depth-1]
			parent.Children = append(parent.Children, item)
		}
		stack = append(stack[:depth], item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("roadmap: read: %w", err)
	}
	if doc.Title == "" {
		return nil, fmt.Errorf("roadmap: document has no heading")
	}
	return doc, nil
}

// ParseFile parses a roadmap from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roadmap: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func parseLinks(text string) []Link {
	var links []Link
	for _, m := range linkRe.FindAllStringSubmatch(text, -1) {
		links = append(links, Link{Text: m[1], URL: m[2]})
	}
	return links
}

// Format renders the document back to canonical Markdown: the heading,
// one blank line, then the checklist with two-space indentation.
func Format(doc *Document) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(doc.Title)
	b.WriteString("\n\n")
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			b.WriteString(strings.Repeat(" ", it.Depth*indentWidth))
			if it.Done {
				b.WriteString("- [x] ")
			} else {
				b.WriteString("- [ ] ")
			}
			b.WriteString(it.Text)
			b.WriteString("\n")
			walk(it.Children)
		}
	}
	walk(doc.Items)
	return b.String()
}

// WriteFile writes the document to disk in canonical form.
func WriteFile(path string, doc *Document) error {
	if err := os.WriteFile(path, []byte(Format(doc)), 0o644); err != nil {
		return fmt.Errorf("roadmap: write: %w", err)
	}
	return nil
}
