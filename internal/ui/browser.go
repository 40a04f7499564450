package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/compas-audio/compas/internal/domain"
	"github.com/compas-audio/compas/internal/ports"
)

type componentFocus int

const (
	inputFocus componentFocus = iota
	listFocus
)

type trackItem struct {
	track domain.Track
	note  string
}

func (i trackItem) FilterValue() string {
	if i.track.Artist != "" {
		return fmt.Sprintf("%s - %s", i.track.Artist, i.track.Title)
	}
	return i.track.Title
}

type itemDelegate struct {
	styles Styles
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(trackItem)
	if !ok {
		return
	}

	itemStyle := d.styles.ListNormal
	pointer := "  "
	if index == m.Index() {
		itemStyle = d.styles.ListSelected
		pointer = d.styles.ListPointer.String()
	}

	line := ti.FilterValue()
	if ti.note != "" {
		line += " " + d.styles.StatusHint.Render(ti.note)
	}

	if m.Width() > 0 {
		lineWidth := m.Width() - lipgloss.Width(itemStyle.Render(pointer))
		line = truncate(line, lineWidth)
	}
	fmt.Fprint(w, itemStyle.Render(pointer+line))
}

// BrowserModel is a filterable track list: typing narrows the visible
// items, enter plays the selection.
type BrowserModel struct {
	title       string
	styles      Styles
	focus       componentFocus
	filterInput textinput.Model
	trackList   list.Model
	fullList    []list.Item
	err         error
}

func NewBrowserModel(title, placeholder string, styles Styles) BrowserModel {
	m := BrowserModel{
		title:  title,
		styles: styles,
		focus:  listFocus,
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	m.filterInput = ti

	li := list.New([]list.Item{}, itemDelegate{styles: styles}, 0, 0)
	li.SetShowTitle(false)
	li.SetShowStatusBar(false)
	li.SetShowPagination(false)
	li.SetShowHelp(false)
	li.SetFilteringEnabled(false)
	m.trackList = li

	return m
}

func (m *BrowserModel) SetSize(w, h int) {
	m.filterInput.Width = w - 2
	m.trackList.SetSize(w-2, h-2)
}

// SetTracks replaces the list contents, keeping notes (e.g. played-at
// stamps for the history tab) alongside each track.
func (m *BrowserModel) SetTracks(tracks []domain.Track, notes []string) {
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		item := trackItem{track: track}
		if notes != nil {
			item.note = notes[i]
		}
		items[i] = item
	}
	m.fullList = items
	m.trackList.SetItems(items)
}

func (m *BrowserModel) SetError(err error) { m.err = err }

// Filtering reports whether the filter input currently owns the keyboard.
func (m *BrowserModel) Filtering() bool { return m.focus == inputFocus }

func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	key, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch key.String() {
		case "/":
			if m.focus == listFocus {
				m.focus = inputFocus
				return m, m.filterInput.Focus()
			}
		case "esc":
			if m.focus == inputFocus {
				m.focus = listFocus
				m.filterInput.Blur()
				return m, nil
			}
		case "enter":
			if selected, ok := m.trackList.SelectedItem().(trackItem); ok {
				m.focus = listFocus
				m.filterInput.Blur()
				return m, func() tea.Msg { return ports.PlayTrackMsg{Track: selected.track} }
			}
		}
	}

	switch m.focus {
	case inputFocus:
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)

		filterTerm := strings.ToLower(m.filterInput.Value())
		var filtered []list.Item
		if filterTerm == "" {
			filtered = m.fullList
		} else {
			for _, item := range m.fullList {
				if strings.Contains(strings.ToLower(item.FilterValue()), filterTerm) {
					filtered = append(filtered, item)
				}
			}
		}
		cmds = append(cmds, m.trackList.SetItems(filtered))

	case listFocus:
		m.trackList, cmd = m.trackList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m BrowserModel) View() string {
	if m.err != nil {
		return m.styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.trackList.View(),
		m.filterInput.View(),
	)
}
