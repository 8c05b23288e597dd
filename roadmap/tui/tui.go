// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tui is an interactive checklist editor for ROADMAP.md. It
// shows the items with their nesting, toggles completion with the space
// bar, and writes the file back on quit when anything changed.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/pipes/roadmap"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// listItem adapts a roadmap item to bubbles/list.Item.
type listItem struct {
	item *roadmap.Item
}

func (i listItem) Title() string       { return i.item.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.item.Text }

type delegate struct{}

func (d delegate) Height() int                               { return 1 }
func (d delegate) Spacing() int                              { return 0 }
func (d delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(listItem)
	if !ok {
		return
	}
	it := li.item

	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Done {
		box = checkedStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	indent := strings.Repeat("  ", it.Depth)
	fmt.Fprintln(w, prefix+indent+box+" "+text)
}

type model struct {
	path    string
	doc     *roadmap.Document
	list    list.Model
	changed bool
	saveErr error
}

func newModel(path string, doc *roadmap.Document) model {
	flat := doc.Flatten()
	items := make([]list.Item, 0, len(flat))
	for _, it := range flat {
		items = append(items, listItem{item: it})
	}

	l := list.New(items, delegate{}, 0, 0)
	l.Title = statusTitle(doc)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	toggleBind := key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space/enter", "toggle"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{toggleBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{toggleBind} }

	return model{path: path, doc: doc, list: l}
}

func statusTitle(doc *roadmap.Document) string {
	s := doc.Stats()
	return fmt.Sprintf("%s  %s %d/%d done",
		titleStyle.Render(doc.Title),
		checkedStyle.Render(boxChecked), s.Done, s.Total)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			if li, ok := m.list.SelectedItem().(listItem); ok {
				li.item.Done = !li.item.Done
				m.changed = true
				m.list.Title = statusTitle(m.doc)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return m.list.View()
}

// Run opens the editor on the given roadmap file. Blocks until the user
// quits; toggled items are written back in canonical form.
func Run(path string) error {
	doc, err := roadmap.ParseFile(path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(path, doc), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := finalModel.(model)
	if !ok || !fm.changed {
		return nil
	}
	return roadmap.WriteFile(path, fm.doc)
}
