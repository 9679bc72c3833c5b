// Package picker provides the interactive person search modal. Typing
// reranks candidates live; stale query results are dropped rather than
// rendered.
package picker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kettleby/dossier/internal/search"
)

// resultItem adapts one search result to the list component.
type resultItem struct {
	result search.Result
}

func (i resultItem) Title() string {
	if i.result.IsNewPerson {
		return newPersonStyle.Render(fmt.Sprintf("%s (new person)", i.result.Person.Name))
	}
	return i.result.Person.Name
}

func (i resultItem) Description() string {
	if i.result.IsNewPerson {
		return fmt.Sprintf("create %s/", i.result.Person.NormalizedName)
	}
	return fmt.Sprintf("%d notes  ·  score %.2f", len(i.result.Person.Notes), i.result.MatchScore)
}

func (i resultItem) FilterValue() string {
	return i.result.Person.Name
}

type outcomeMsg search.Outcome

// Model drives the search modal. Outcomes arrive on a channel fed by
// the async searcher so that superseded queries never reach the view.
type Model struct {
	input    textinput.Model
	list     list.Model
	async    *search.Async
	outcomes chan search.Outcome

	selection *search.Result
	quitting  bool
}

func NewModel(async *search.Async) Model {
	input := textinput.New()
	input.Placeholder = "Type a person's name..."
	input.Prompt = "> "
	input.Focus()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 14)
	l.Title = "People"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	return Model{
		input:    input,
		list:     l,
		async:    async,
		outcomes: make(chan search.Outcome, 8),
	}
}

// Selection returns the chosen result once the program has finished.
func (m Model) Selection() (search.Result, bool) {
	if m.selection == nil {
		return search.Result{}, false
	}
	return *m.selection, true
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForOutcome())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-3)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if i, ok := m.list.SelectedItem().(resultItem); ok {
				r := i.result
				m.selection = &r
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case tea.KeyUp, tea.KeyDown, tea.KeyCtrlP, tea.KeyCtrlN:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

		if m.input.Value() != before {
			m.dispatch(m.input.Value())
		}

		return m, tea.Batch(cmds...)

	case outcomeMsg:
		cmds = append(cmds, m.waitForOutcome())

		if msg.Query != m.input.Value() {
			return m, tea.Batch(cmds...)
		}

		if msg.Err != nil {
			cmds = append(cmds, m.list.NewStatusMessage(
				statusMessageStyle(fmt.Sprintf("Search error: %v", msg.Err)),
			))
			return m, tea.Batch(cmds...)
		}

		items := make([]list.Item, 0, len(msg.Results))
		for _, r := range msg.Results {
			items = append(items, resultItem{result: r})
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.ResetSelected()

		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return appStyle.Render(m.input.View() + "\n\n" + m.list.View())
}

// dispatch hands the query to the async searcher. Delivery goes through
// the outcome channel so the program loop picks it up as a message.
func (m *Model) dispatch(query string) {
	ch := m.outcomes
	m.async.Search(query, func(o search.Outcome) {
		ch <- o
	})
}

func (m Model) waitForOutcome() tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(<-m.outcomes)
	}
}

// Run opens the modal and blocks until the user selects or aborts.
func Run(async *search.Async) (search.Result, bool, error) {
	final, err := tea.NewProgram(NewModel(async), tea.WithAltScreen()).Run()
	if err != nil {
		return search.Result{}, false, fmt.Errorf("error running person picker: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return search.Result{}, false, fmt.Errorf("unexpected model type %T", final)
	}

	r, selected := m.Selection()
	return r, selected, nil
}
