// Package advisortui implements the interactive terminal view over
// internal/advisor: a single-line command input plus a scrolling log of
// past recommendations, in the same bubbletea/bubbles/lipgloss style the
// teacher's internal/tui package uses for its table view.
package advisortui

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cardshark/holdem-solver/internal/advisor"
	"github.com/cardshark/holdem-solver/internal/bucket"
	"github.com/cardshark/holdem-solver/internal/cards"
	"github.com/cardshark/holdem-solver/internal/equity"
	"github.com/cardshark/holdem-solver/internal/holdem"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Bold(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	recoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	logPaneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#626262"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#04B575"))
)

// Model is the bubbletea model for the advisor TUI. It accepts commands of
// the form "hole AsKd board 7h2d9s pot 40 tocall 10 stack 900" and prints
// the resulting recommendation and display equity to the log. The pot field
// is parsed but not applied to the synthetic state.
type Model struct {
	advisor *advisor.Advisor
	logger  *log.Logger
	rng     *rand.Rand

	input    textinput.Model
	viewport viewport.Model
	lines    []string

	width, height int
	quitting      bool
}

// New builds a Model that queries adv for recommendations, logging through
// logger (which should already be directed away from stdout).
func New(adv *advisor.Advisor, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = `hole AsKd board 7h2d9s pot 40 tocall 10 stack 900`
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 80
	ti.PromptStyle = promptStyle
	ti.Prompt = "> "

	vp := viewport.New(10, 5)

	return &Model{
		advisor:  adv,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		input:    ti,
		viewport: vp,
		lines:    []string{infoStyle.Render("type a query and press enter, ctrl+c to quit")},
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if query != "" {
				m.handleQuery(query)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	header := headerStyle.Render(" holdem advisor ")

	m.viewport.Width = m.width - 2
	m.viewport.Height = m.height - 7
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	logPane := logPaneStyle.Width(m.width - 2).Height(m.height - 7).Render(m.viewport.View())

	inputPane := inputBoxStyle.Width(m.width - 2).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, logPane, inputPane)
}

func (m *Model) handleQuery(query string) {
	q, err := parseQuery(query)
	if err != nil {
		m.append(errorStyle.Render(err.Error()))
		return
	}

	g := syntheticState(q)
	actions, weights := m.advisor.ActionWeights(g)
	if len(actions) == 0 {
		m.append(errorStyle.Render("no legal actions for the given state"))
		return
	}

	street := streetFor(q.board.CountCards())
	b := bucket.Classify(q.hole, q.board, street)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  hole=%s board=%s\n", recoStyle.Render("recommendation"), q.hole, q.board)
	fmt.Fprintf(&sb, "bucket=%s street=%s\n", b, street)
	for i, a := range actions {
		fmt.Fprintf(&sb, "  %-6s amount=%-6d weight=%.3f\n", a.Kind, a.Amount, weights[i])
	}

	result, err := equity.Calculate(q.hole, q.board, q.opponents, 10000, m.rng)
	if err == nil {
		fmt.Fprintf(&sb, "display equity vs %d opponent(s): %.1f%%\n", q.opponents, result.Equity(q.opponents)*100)
	}

	m.append(sb.String())
}

func (m *Model) append(s string) {
	m.lines = append(m.lines, s)
	m.viewport.GotoBottom()
}

type query struct {
	hole, board cards.Hand
	pot, toCall, stack, bigBlind, opponents int
}

func parseQuery(raw string) (query, error) {
	q := query{stack: 1000, bigBlind: 10, opponents: 1}
	fields := strings.Fields(raw)

	for i := 0; i < len(fields); i++ {
		key := strings.ToLower(fields[i])
		if i+1 >= len(fields) {
			return query{}, fmt.Errorf("missing value for %q", key)
		}
		value := fields[i+1]
		i++

		var err error
		switch key {
		case "hole":
			q.hole, err = parseHand(value)
		case "board":
			q.board, err = parseHand(value)
		case "pot":
			q.pot, err = strconv.Atoi(value)
		case "tocall":
			q.toCall, err = strconv.Atoi(value)
		case "stack":
			q.stack, err = strconv.Atoi(value)
		case "bb":
			q.bigBlind, err = strconv.Atoi(value)
		case "opponents":
			q.opponents, err = strconv.Atoi(value)
		default:
			return query{}, fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return query{}, fmt.Errorf("field %q: %w", key, err)
		}
	}

	if q.hole.CountCards() != 2 {
		return query{}, fmt.Errorf("hole must carry exactly 2 cards, e.g. hole AsKd")
	}
	return q, nil
}

func parseHand(s string) (cards.Hand, error) {
	var h cards.Hand
	for i := 0; i+1 < len(s); i += 2 {
		c, err := cards.ParseCard(s[i : i+2])
		if err != nil {
			return 0, err
		}
		h = h.Add(c)
	}
	return h, nil
}

func streetFor(boardCards int) bucket.Street {
	switch boardCards {
	case 0:
		return bucket.Preflop
	case 3:
		return bucket.Flop
	case 4:
		return bucket.Turn
	default:
		return bucket.River
	}
}

func syntheticState(q query) *holdem.GameState {
	deck := cards.NewDeck(rand.New(rand.NewSource(1)))
	g, _ := holdem.NewGameState([]int{q.stack + q.toCall, q.stack + q.toCall}, 0, q.bigBlind/2, q.bigBlind, deck)
	g.Players[0].Hole = q.hole
	g.Board = q.board
	g.Street = streetFor(q.board.CountCards())
	g.Players[0].CurrentBet = 0
	g.Players[0].Stack = q.stack
	g.HighestBet = q.toCall
	g.ActingSeat = 0
	return g
}
