package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/a-h/wabot/client"
	"github.com/a-h/wabot/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type ChatCommand struct {
	ServerURL    string `help:"The URL of the bot server." env:"WABOT_SERVER_URL" default:"http://localhost:9030"`
	ServerAPIKey string `help:"The API key for the bot server." env:"WABOT_SERVER_API_KEY" default:""`
	Nick         string `help:"Your nick in the channel." env:"NICK" default:"you"`
	LogLevel     string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

// chatLine is a line in the channel.
type chatLine struct {
	Nick string
	Text string
}

const botNick = "wabot"

// pendingMessages is the number of messages that can wait to be posted.
const pendingMessages = 16

func (c ChatCommand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	toBot := make(chan string, pendingMessages)
	defer close(toBot)
	fromBot := make(chan []chatLine)
	errors := make(chan error)

	go sendMessages(ctx, client.New(c.ServerURL, c.ServerAPIKey), c.Nick, toBot, fromBot, errors)

	p := tea.NewProgram(newModel(ctx, c.Nick, toBot, fromBot, errors))
	if _, err = p.Run(); err != nil {
		return err
	}
	return nil
}

type messagePoster interface {
	MessagesPost(ctx context.Context, req models.MessagesPostRequest) (resp models.MessagesPostResponse, err error)
}

// sendMessages posts each message from toBot in order, and publishes the
// channel history after each change. It returns when toBot is closed or ctx is
// done.
func sendMessages(ctx context.Context, mp messagePoster, nick string, toBot <-chan string, fromBot chan<- []chatLine, errors chan<- error) {
	var history []chatLine
	publish := func() bool {
		select {
		case fromBot <- slices.Clone(history):
			return true
		case <-ctx.Done():
			return false
		}
	}
	for text := range toBot {
		history = append(history, chatLine{Nick: nick, Text: text})
		if !publish() {
			return
		}
		resp, err := mp.MessagesPost(ctx, models.MessagesPostRequest{
			Nick: nick,
			Text: text,
		})
		if err != nil {
			select {
			case errors <- err:
				continue
			case <-ctx.Done():
				return
			}
		}
		for _, line := range resp.Lines {
			history = append(history, chatLine{Nick: botNick, Text: line})
		}
		if !publish() {
			return
		}
	}
}

// Dracula color scheme.
var (
	CurrentLine = lipgloss.Color("#44475a")
	Foreground  = lipgloss.Color("#f8f8f2")
	Cyan        = lipgloss.Color("#8be9fd")
	Pink        = lipgloss.Color("#ff79c6")
	Purple      = lipgloss.Color("#bd93f9")
	Red         = lipgloss.Color("#ff5555")
)

var headerStyle = lipgloss.NewStyle().Background(CurrentLine).Foreground(Purple).Bold(true).Padding(0, 1)

var (
	ownNickStyle = lipgloss.NewStyle().Foreground(Pink).Bold(true)
	botNickStyle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(Foreground)
	errorStyle   = lipgloss.NewStyle().Foreground(Red)
)

type model struct {
	viewport viewport.Model
	textarea textarea.Model
	err      error
	ctx      context.Context
	nick     string
	lines    []chatLine

	toBot   chan<- string
	fromBot <-chan []chatLine
	errors  <-chan error
}

func newModel(ctx context.Context, nick string, toBot chan<- string, fromBot <-chan []chatLine, errors <-chan error) model {
	ta := textarea.New()
	ta.Placeholder = "Type .wa <query>, e.g. .wa next full moon"
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 400

	ta.SetHeight(1)

	// Remove cursor line styling
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(headerStyle.Render("#wabot") + "\n")

	ta.KeyMap.InsertNewline.SetEnabled(false)

	return model{
		ctx:      ctx,
		nick:     nick,
		textarea: ta,
		viewport: vp,
		fromBot:  fromBot,
		toBot:    toBot,
		errors:   errors,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.subscribeToFromBot(),
		m.subscribeToErrors(),
	)
}

func (m model) subscribeToFromBot() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.fromBot:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m model) subscribeToErrors() tea.Cmd {
	return func() tea.Msg {
		select {
		case x := <-m.errors:
			return x
		case <-m.ctx.Done():
			return nil
		}
	}
}

func formatLine(l chatLine, ownNick string, width int) string {
	nickStyle := botNickStyle
	if l.Nick == ownNick {
		nickStyle = ownNickStyle
	}
	prefix := "<" + l.Nick + "> "
	if width <= len(prefix) {
		width = 80
	}
	wrapped := wordwrap.String(strings.TrimSpace(l.Text), width-len(prefix))
	return nickStyle.Render(prefix) + textStyle.Render(wrapped)
}

func (m model) render() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("#wabot"))
	sb.WriteString("\n")
	for _, l := range m.lines {
		sb.WriteString(formatLine(l, m.nick, m.viewport.Width))
		sb.WriteString("\n")
	}
	if m.err != nil {
		sb.WriteString(errorStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		m.err = msg
		m.viewport.SetContent(m.render())
		m.viewport.GotoBottom()
		return m, m.subscribeToErrors()
	case []chatLine:
		m.lines = msg
		m.viewport.SetContent(m.render())
		m.viewport.GotoBottom()
		return m, m.subscribeToFromBot()
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - m.textarea.Height() - 3
		m.textarea.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.textarea.Value())
			if v == "" {
				// Don't send empty messages.
				return m, nil
			}
			m.err = nil
			select {
			case m.toBot <- v:
				m.textarea.Reset()
			default:
				m.err = fmt.Errorf("too many messages waiting to be sent, try again shortly")
				m.viewport.SetContent(m.render())
				m.viewport.GotoBottom()
			}
			return m, nil
		default:
			// Send all other keypresses to the textarea.
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			return m, cmd
		}

	case cursor.BlinkMsg:
		// Textarea should also process cursor blinks.
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m model) View() string {
	return fmt.Sprintf("%s\n\n%s",
		m.viewport.View(),
		m.textarea.View(),
	) + "\n\n"
}
