package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/text-adventure/internal/config"
	"github.com/jwebster45206/text-adventure/internal/logger"
	"github.com/jwebster45206/text-adventure/pkg/session"
)

const PlaceHolderText = "Type a command, e.g. go east..."

type entryKind int

const (
	entryOutput entryKind = iota
	entryPlayer
	entryNotice
)

type entry struct {
	kind entryKind
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *config.Config
	logger       *slog.Logger
	session      *session.Session
	transcript   []entry
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	titleCaser   cases.Caser
	ready        bool
	width        int
	height       int
	err          error

	// World selection state
	showWorldModal bool
	worlds         []string
	selectedWorld  int

	// Quit confirmation state
	showQuitModal bool
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *config.Config, log *slog.Logger, worlds []string) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		config:         cfg,
		logger:         log,
		textarea:       ta,
		chatViewport:   chatVp,
		metaViewport:   metaVp,
		titleCaser:     cases.Title(language.English),
		worlds:         worlds,
		showWorldModal: len(worlds) > 1,
	}
	if !m.showWorldModal {
		m.startSession(worlds[0])
	}
	return m
}

// startSession loads the chosen world; a failure is shown in the world modal.
func (m *ConsoleUI) startSession(path string) {
	sess, err := newSession(path, m.config, m.logger)
	if err != nil {
		logger.WithError(m.logger, err).Error("failed to start session", "path", path)
		m.err = err
		m.showWorldModal = true
		return
	}
	m.err = nil
	m.session = sess
	m.showWorldModal = false
	m.transcript = []entry{{kind: entryOutput, text: sess.Intro()}}
}

func (m ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	st := m.session.Status()

	content.WriteString("Session:\n")
	content.WriteString(m.session.ID.String()[:8] + "...\n\n")

	content.WriteString("Location:\n")
	content.WriteString(fmt.Sprintf("%d\n\n", st.LocationID))

	content.WriteString("Moves:\n")
	if st.MaxMoves > 0 {
		content.WriteString(fmt.Sprintf("%d / %d\n\n", st.Moves, st.MaxMoves))
	} else {
		content.WriteString(fmt.Sprintf("%d\n\n", st.Moves))
	}

	content.WriteString("Score:\n")
	content.WriteString(fmt.Sprintf("%d\n\n", st.Score))

	content.WriteString("Undo chances:\n")
	if st.UndoLeft < 0 {
		content.WriteString("unlimited\n\n")
	} else {
		content.WriteString(fmt.Sprintf("%d\n\n", st.UndoLeft))
	}

	if len(st.Inventory) > 0 {
		content.WriteString("Inventory:\n")
		for _, name := range st.Inventory {
			content.WriteString(fmt.Sprintf("• %s\n", m.titleCaser.String(name)))
		}
	} else {
		content.WriteString("Inventory:\nEmpty\n")
	}

	if st.InPuzzle {
		content.WriteString("\n" + noticeStyle.Render("Puzzle in progress") + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+Y: Copy log\n")

	return content.String()
}

// writeChatContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("TEXT ADVENTURE") + "\n\n")
	content.WriteString("Type commands below. Try look, inventory, score, log or undo.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, e := range m.transcript {
		switch e.kind {
		case entryPlayer:
			content.WriteString(playerStyle.Render("> ") + wordwrap.String(e.text, chatWidth-2) + "\n\n")
		case entryNotice:
			content.WriteString(noticeStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		default:
			content.WriteString(formatOutput(e.text, chatWidth) + "\n")
		}
	}

	if m.session != nil && !m.session.Ongoing() {
		content.WriteString(promptStyle.Render("The game is over. Press Ctrl+C to exit.") + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

// formatOutput wraps session output and highlights headings, actions and verdicts.
func formatOutput(text string, width int) string {
	lines := strings.Split(wordwrap.String(strings.TrimRight(text, "\n"), width), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "LOCATION "):
			lines[i] = headingStyle.Render(line)
		case strings.HasPrefix(line, "- "):
			lines[i] = actionStyle.Render(line)
		case line == session.InvalidMessage, strings.HasPrefix(line, "Cannot "), line == "GAME OVER":
			lines[i] = errorStyle.Render(line)
		case line == "YOU WIN!!!":
			lines[i] = titleStyle.Render(line)
		case line == "========":
			lines[i] = separatorStyle.Render(strings.Repeat("─", max(width-6, 1)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 8
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m *ConsoleUI) refresh() {
	m.writeChatContent()
	m.metaViewport.SetContent(m.writeMetadata())
	m.textarea.Prompt = promptStyle.Render(":: ")
	if m.session.InPuzzle() {
		m.textarea.Placeholder = m.session.Prompt()
	} else {
		m.textarea.Placeholder = PlaceHolderText
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showWorldModal {
		return m.updateWorldModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if !m.session.Ongoing() {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil

		case tea.KeyCtrlY:
			if err := clipboard.WriteAll(m.session.LogText()); err != nil {
				logger.WithError(m.logger, err).Warn("clipboard copy failed")
				m.transcript = append(m.transcript, entry{kind: entryNotice, text: "Could not copy the event log: " + err.Error()})
			} else {
				m.transcript = append(m.transcript, entry{kind: entryNotice, text: "Event log copied to clipboard."})
			}
			m.refresh()
			return m, nil

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" || !m.session.Ongoing() {
				return m, nil
			}

			m.transcript = append(m.transcript,
				entry{kind: entryPlayer, text: input},
				entry{kind: entryOutput, text: m.session.Handle(input)},
			)
			m.refresh()
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) updateWorldModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selectedWorld > 0 {
				m.selectedWorld--
			}
		case tea.KeyDown:
			if m.selectedWorld < len(m.worlds)-1 {
				m.selectedWorld++
			}
		case tea.KeyEnter:
			m.startSession(m.worlds[m.selectedWorld])
			if m.session != nil && m.width > 0 && m.height > 0 {
				m.resize()
				m.ready = true
				m.refresh()
			}
			m.textarea.Focus()
			return m, textarea.Blink
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderWorldModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Select a World"))
	content.WriteString("\n\n")

	if m.err != nil {
		content.WriteString(errorStyle.Render(wordwrap.String(fmt.Sprintf("Failed to load world: %v", m.err), 50)))
		content.WriteString("\n\n")
	}

	for i, path := range m.worlds {
		if i == m.selectedWorld {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", worldName(path))))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", worldName(path))))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showWorldModal {
		return m.renderWorldModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			promptStyle.Render(m.session.Prompt()),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
