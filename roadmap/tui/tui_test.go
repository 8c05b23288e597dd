// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/pipes/roadmap"
)

func testDoc(t *testing.T) *roadmap.Document {
	t.Helper()
	doc, err := roadmap.Parse(strings.NewReader(
		"# ROADMAP\n\n- [ ] first\n  - [ ] nested\n- [x] second\n"))
	require.NoError(t, err)
	return doc
}

func TestModelListsAllItems(t *testing.T) {
	m := newModel("ROADMAP.md", testDoc(t))
	assert.Len(t, m.list.Items(), 3)
}

func TestSpaceTogglesSelection(t *testing.T) {
	m := newModel("ROADMAP.md", testDoc(t))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	nm, ok := next.(model)
	require.True(t, ok)

	assert.True(t, nm.changed)
	assert.True(t, nm.doc.Items[0].Done)
	// The nested child keeps its own flag.
	assert.False(t, nm.doc.Items[0].Children[0].Done)
}

func TestQuitKeysDoNotToggle(t *testing.T) {
	m := newModel("ROADMAP.md", testDoc(t))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	nm := next.(model)
	assert.False(t, nm.changed)
	assert.NotNil(t, cmd)
}
