// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package roadmap reads and writes the project's ROADMAP.md checklist:
// a Markdown document with a single top-level heading followed by a
// nested bullet list of checkbox items.
package roadmap

import "fmt"

// Link is an inline Markdown link inside an item's text.
type Link struct {
	Text string
	URL  string
}

// Item is one checklist entry. Children are nested sub-items; their
// completion flags are independent of the parent's.
type Item struct {
	Text     string
	Done     bool
	Depth    int
	Links    []Link
	Children []*Item
}

// Document is a parsed roadmap.
type Document struct {
	Title string
	Items []*Item
}

// Flatten returns every item in document order, parents before their
// children.
func (d *Document) Flatten() []*Item {
	var out []*Item
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			out = append(out, it)
			walk(it.Children)
		}
	}
	walk(d.Items)
	return out
}

// Stats summarizes completion across all items, nested ones included.
type Stats struct {
	Total int
	Done  int
}

// Stats counts items and completed items.
func (d *Document) Stats() Stats {
	var s Stats
	for _, it := range d.Flatten() {
		s.Total++
		if it.Done {
			s.Done++
		}
	}
	return s
}

// Toggle flips the completion flag of the item at the given flattened
// index. Children keep their own flags.
func (d *Document) Toggle(index int) error {
	items := d.Flatten()
	if index < 0 || index >= len(items) {
		return fmt.Errorf("roadmap: item %d out of range [0,%d)", index, len(items))
	}
	items[index].Done = !items[index].Done
	return nil
}
