// Package tui provides the interactive identity picker used by `gitid switch`.
//
// It is a small bubbletea program: the Model holds a bubbles list of stored
// identities, Update reacts to keys, and View renders the list.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ksteinfeldt/gitid/internal/identity"
	"github.com/ksteinfeldt/gitid/internal/style"
)

const (
	defaultWidth  = 64
	defaultHeight = 16
)

// identityItem implements list.Item for a stored record.
type identityItem struct {
	rec     identity.Record
	current bool
}

func (i identityItem) Title() string {
	title := fmt.Sprintf("%s) %s", i.rec.Ordinal, i.rec.Label)
	if i.current {
		title += " " + style.CurrentMarker
	}
	return title
}

func (i identityItem) Description() string {
	return fmt.Sprintf("%s <%s>", i.rec.FullName, i.rec.Email)
}

func (i identityItem) FilterValue() string { return i.rec.Label }

// Picker is the bubbletea model for choosing one identity.
type Picker struct {
	list     list.Model
	chosen   *identity.Record
	canceled bool
}

// NewPicker builds a picker over records with the cursor on the first record
// whose email equals currentEmail.
func NewPicker(records []identity.Record, currentEmail string) *Picker {
	items := make([]list.Item, len(records))
	selected := 0
	marked := false
	for i, r := range records {
		isCurrent := !marked && currentEmail != "" && r.Email == currentEmail
		if isCurrent {
			selected = i
			marked = true
		}
		items[i] = identityItem{rec: r, current: isCurrent}
	}

	l := list.New(items, list.NewDefaultDelegate(), defaultWidth, defaultHeight)
	l.Title = "Commit identity"
	l.Styles.Title = style.Title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.Select(selected)

	return &Picker{list: l}
}

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.list.SetSize(msg.Width, msg.Height)
		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			p.canceled = true
			return p, tea.Quit
		case "enter":
			if item, ok := p.list.SelectedItem().(identityItem); ok {
				rec := item.rec
				p.chosen = &rec
			}
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View implements tea.Model.
func (p *Picker) View() string {
	if p.chosen != nil || p.canceled {
		return ""
	}
	return p.list.View()
}

// Chosen returns the selected record. The boolean is false when the picker was
// canceled or nothing was selected.
func (p *Picker) Chosen() (identity.Record, bool) {
	if p.chosen == nil {
		return identity.Record{}, false
	}
	return *p.chosen, true
}

// Pick runs the picker on the controlling terminal and returns the chosen
// record.
func Pick(records []identity.Record, currentEmail string) (identity.Record, bool, error) {
	p := NewPicker(records, currentEmail)
	final, err := tea.NewProgram(p, tea.WithInputTTY(), tea.WithAltScreen()).Run()
	if err != nil {
		return identity.Record{}, false, fmt.Errorf("running picker: %w", err)
	}
	rec, ok := final.(*Picker).Chosen()
	return rec, ok, nil
}
