// Package tui implements the interactive full-screen mode: an input form,
// a live search indicator and a single outcome panel, driven by bubbletea.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlemay/eventfind/internal/config"
	apperrors "github.com/mlemay/eventfind/internal/errors"
	"github.com/mlemay/eventfind/internal/query"
)

// Submitter runs one query through its full lifecycle and returns the
// outcome. Satisfied by query.Orchestrator.
type Submitter interface {
	Submit(ctx context.Context, interest, location string) query.Outcome
}

// TickMsg drives the header's wall clock.
type TickMsg time.Time

// searchDoneMsg carries a finished submission back into the update loop.
// Generation identifies which submission produced it so results from a
// superseded submission are dropped.
type searchDoneMsg struct {
	outcome    query.Outcome
	generation uint64
}

// Field indices for the input form.
const (
	fieldInterest = iota
	fieldLocation
	fieldCount
)

// Model is the root bubbletea model for the interactive search screen.
type Model struct {
	header  HeaderModel
	inputs  []textinput.Model
	spin    spinner.Model
	keymap  KeyMap

	submitter Submitter
	ctx       context.Context

	// phase selects which outcome panel is rendered. Exactly one panel is
	// visible at a time.
	phase   query.Phase
	results string
	message string

	// searching guards against re-entrant submissions; generation tags
	// each submission so stale completions are ignored.
	searching  bool
	generation uint64

	width  int
	height int
	focus  int
}

// NewModel creates the interactive search model. The location field is
// pre-filled from the configuration.
func NewModel(ctx context.Context, submitter Submitter, cfg config.AppConfig, version string) Model {
	interest := textinput.New()
	interest.Placeholder = "what kind of events are you looking for?"
	interest.CharLimit = 200
	interest.Width = 50
	interest.SetValue(cfg.Interest)
	interest.Focus()

	location := textinput.New()
	location.Placeholder = config.DefaultLocation
	location.CharLimit = 100
	location.Width = 50
	location.SetValue(cfg.Location)

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(searchingStyle),
	)

	return Model{
		header:    NewHeaderModel(version),
		inputs:    []textinput.Model{interest, location},
		spin:      sp,
		keymap:    DefaultKeyMap(),
		submitter: submitter,
		ctx:       ctx,
		phase:     query.PhaseIdle,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(m.width)
		return m, nil

	case TickMsg:
		m.header.Tick(time.Time(msg))
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case searchDoneMsg:
		if msg.generation != m.generation {
			return m, nil // stale completion from a superseded submission
		}
		m.searching = false
		m.applyOutcome(msg.outcome)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		if m.searching {
			return m, nil
		}
		return m.startSearch()

	case key.Matches(msg, m.keymap.FocusNext):
		m.focus = (m.focus + 1) % fieldCount
		for i := range m.inputs {
			if i == m.focus {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		if m.searching {
			return m, nil
		}
		m.inputs[fieldInterest].SetValue("")
		m.inputs[fieldLocation].SetValue("")
		m.phase = query.PhaseIdle
		m.results = ""
		m.message = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// startSearch begins a new submission and marks the form busy until the
// matching completion arrives.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.generation++
	m.searching = true
	m.phase = query.PhaseSearching
	m.results = ""
	m.message = ""

	interest := m.inputs[fieldInterest].Value()
	location := m.inputs[fieldLocation].Value()

	return m, tea.Batch(
		m.spin.Tick,
		searchCmd(m.ctx, m.submitter, interest, location, m.generation),
	)
}

// applyOutcome maps a terminal outcome onto the panel state.
func (m *Model) applyOutcome(outcome query.Outcome) {
	switch outcome.Kind {
	case query.OutcomeSuccess:
		m.phase = query.PhaseSuccess
		m.results = outcome.Results
		m.message = ""
	case query.OutcomeNoResults:
		m.phase = query.PhaseNoResults
		m.message = outcome.Message
	default:
		m.phase = query.PhaseError
		m.message = outcome.Message
	}
}

// View renders the full screen: header, form, one outcome panel, footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()

	form := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Interest"),
		m.inputs[fieldInterest].View(),
		"",
		labelStyle.Render("Location"),
		m.inputs[fieldLocation].View(),
	)

	panel := panelStyle.Width(m.panelWidth()).Render(m.panelContent())

	footer := m.footerView()

	return lipgloss.JoinVertical(lipgloss.Left, header, "", form, "", panel, "", footer)
}

// panelContent renders the body of the single outcome panel for the current
// phase.
func (m Model) panelContent() string {
	wrap := m.panelWidth() - 2
	if wrap < 10 {
		wrap = 10
	}

	switch m.phase {
	case query.PhaseSearching:
		location := m.inputs[fieldLocation].Value()
		if location == "" {
			location = config.DefaultLocation
		}
		return m.spin.View() + searchingStyle.Render(
			fmt.Sprintf(" Searching for events near %s...", location))
	case query.PhaseSuccess:
		return resultsStyle.Width(wrap).Render(m.results)
	case query.PhaseNoResults:
		return noResultsStyle.Width(wrap).Render(m.message)
	case query.PhaseError:
		return errorStyle.Width(wrap).Render(m.message)
	default:
		return hintStyle.Render("Describe what you are looking for and press enter.")
	}
}

func (m Model) panelWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) footerView() string {
	bindings := []key.Binding{
		m.keymap.Submit, m.keymap.FocusNext, m.keymap.Clear, m.keymap.Quit,
	}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += footerDescStyle.Render("  ")
		}
		out += footerKeyStyle.Render(b.Help().Key) +
			footerDescStyle.Render(" "+b.Help().Desc)
	}
	return out
}

// Run is the public entry point for the interactive mode. It creates the
// bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, submitter Submitter, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, submitter, cfg, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}

	// An interactive session that the user quits normally is a success,
	// whatever the last search returned.
	return apperrors.ExitSuccess
}

// searchCmd runs the submission off the update loop and reports back with a
// generation-tagged message.
func searchCmd(ctx context.Context, submitter Submitter, interest, location string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		outcome := submitter.Submit(ctx, interest, location)
		return searchDoneMsg{outcome: outcome, generation: gen}
	}
}

// tickCmd returns a command that advances the wall clock once per second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
