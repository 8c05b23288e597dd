// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package roadmap

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Problem is one lint finding with its 1-based line number.
type Problem struct {
	Line    int
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s", p.Line, p.Message)
}

// Lint checks a roadmap document against its structural rules and
// returns every finding, unlike Parse which stops at the first. A nil
// slice means the document is clean.
func Lint(r io.Reader) ([]Problem, error) {
	var problems []Problem
	report := func(line int, format string, args ...any) {
		problems = append(problems, Problem{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	scanner := bufio.NewScanner(r)
	lineno := 0
	sawHeading := false
	prevDepth := -1
	seen := make(map[string]int)
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()
		line := strings.TrimSuffix(raw, "\r")
		if line != raw && strings.ContainsRune(line, '\r') {
			report(lineno, "stray carriage return inside line")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimRight(line, " ") != line {
			report(lineno, "trailing whitespace")
			line = strings.TrimRight(line, " ")
		}

		if !sawHeading {
			if !strings.HasPrefix(line, "# ") || strings.TrimSpace(line[2:]) == "" {
				report(lineno, "document must open with a `# Title` heading, got %q", line)
			}
			sawHeading = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			report(lineno, "only one heading is allowed")
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " "))
		body := line[indent:]
		if strings.HasPrefix(body, "\t") {
			report(lineno, "tab indentation is not allowed")
			continue
		}
		if indent%indentWidth != 0 {
			report(lineno, "indentation of %d spaces is not a multiple of %d", indent, indentWidth)
			continue
		}
		depth := indent / indentWidth
		if depth > prevDepth+1 {
			report(lineno, "item skips from depth %d to %d", prevDepth, depth)
		}
		prevDepth = depth

		m := checkboxRe.FindStringSubmatch(body)
		if m == nil {
			report(lineno, "list item must match `- [ ]` or `- [x]`, got %q", body)
			continue
		}
		text := strings.TrimSpace(m[2])
		if text == "" {
			report(lineno, "empty item text")
		} else if first, dup := seen[text]; dup {
			report(lineno, "duplicate of the item on line %d", first)
		} else {
			seen[text] = lineno
		}
		for _, lm := range linkRe.FindAllStringSubmatch(m[2], -1) {
			if strings.TrimSpace(lm[2]) == "" {
				report(lineno, "link %q has an empty target", lm[1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return problems, fmt.Errorf("roadmap: lint: %w", err)
	}
	if !sawHeading {
		report(1, "document is empty")
	}
	return problems, nil
}
