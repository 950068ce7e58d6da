package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/studydeck/internal/core/domain"
)

// Fixed heights of the chrome around the transcript.
const (
	headerHeight = 3
	inputHeight  = 3
	statusHeight = 1
)

// entry is one block of the transcript.
type entry struct {
	author string
	body   string
	isErr  bool
	isUser bool
}

// App is the study console following the Elm architecture.
// It owns one session; at most one action runs against it at a time.
type App struct {
	ports   *Ports
	ctx     context.Context
	session *domain.Session

	styles *styles.Styles
	keymap *keymap.KeyMap

	viewport viewport.Model
	input    *input.PromptInput
	status   *status.Bar

	entries []entry
	busy    bool
	err     error

	// Read from the session only while idle: a running command owns it.
	sourceCount int
	turnCount   int
	corpusLine  string

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a study console over an already loaded session.
func NewApp(ports *Ports, session *domain.Session) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if session == nil {
		return nil, ErrMissingSession
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:    ports,
		ctx:      context.Background(),
		session:  session,
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
		input:    input.NewPromptInput(s),
		status:   status.NewBar(s, km),
	}
	a.entries = append(a.entries, entry{author: "studydeck", body: helpText})
	a.refresh()
	return a, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.input.Init(),
		tea.SetWindowTitle("studydeck"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.AnswerReceived:
		a.busy = false
		if msg.Err != nil {
			a.fail(msg.Err)
		} else {
			a.status.SetState(status.StateReady, "")
			a.entries = append(a.entries, entry{author: "Assistant", body: msg.Answer})
		}
		a.refresh()
		return a, nil

	case messages.TaskCompleted:
		a.busy = false
		if msg.Err != nil {
			a.fail(msg.Err)
		} else {
			a.status.SetState(status.StateReady, "")
			a.entries = append(a.entries, entry{author: msg.Title, body: msg.Markdown})
		}
		a.refresh()
		return a, nil

	case messages.ErrorOccurred:
		a.busy = false
		a.fail(msg.Err)
		a.refresh()
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.ScrollUp):
		a.viewport.HalfPageUp()
		return a, nil
	case key.Matches(msg, a.keymap.ScrollDown):
		a.viewport.HalfPageDown()
		return a, nil
	case key.Matches(msg, a.keymap.Clear):
		a.input.Reset()
		return a, nil
	case key.Matches(msg, a.keymap.Send):
		return a.submit()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submit dispatches the prompt. Input is ignored while an action runs.
func (a *App) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(a.input.Value())
	if line == "" || a.busy {
		return a, nil
	}
	a.input.Reset()

	if isQuit(line) {
		return a, tea.Quit
	}

	a.entries = append(a.entries, entry{author: "You", body: line, isUser: true})

	req, isCommand, err := parseCommand(line)
	if err != nil {
		a.fail(err)
		a.refresh()
		return a, nil
	}
	if !isCommand {
		a.start("Thinking")
		return a, a.ask(line)
	}

	switch req.Task {
	case messages.TaskHelp:
		a.entries = append(a.entries, entry{author: "Help", body: helpText})
	case messages.TaskSources:
		a.entries = append(a.entries, entry{author: "Sources", body: formatSources(a.session.Sources())})
	case messages.TaskReset:
		a.ports.Ingest.Reset(a.session)
		a.entries = []entry{{author: "studydeck", body: "Session reset. All sources and history were dropped."}}
		a.status.SetState(status.StateReady, "")
	default:
		a.start(strings.ToUpper(req.Task.String()[:1]) + req.Task.String()[1:])
		a.refresh()
		return a, a.run(req)
	}
	a.refresh()
	return a, nil
}

func (a *App) start(label string) {
	a.busy = true
	a.err = nil
	a.status.SetState(status.StateWorking, label)
	a.refresh()
}

func (a *App) fail(err error) {
	a.err = err
	a.status.SetState(status.StateError, err.Error())
	a.entries = append(a.entries, entry{author: "Error", body: err.Error(), isErr: true})
}

// ask returns a command answering question against the session.
func (a *App) ask(question string) tea.Cmd {
	ctx, chat, sess := a.ctx, a.ports.Chat, a.session
	return func() tea.Msg {
		answer, err := chat.Ask(ctx, sess, question)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// run returns a command executing a remote task.
func (a *App) run(req messages.TaskRequested) tea.Cmd {
	ctx, study, sess := a.ctx, a.ports.Study, a.session
	return func() tea.Msg {
		done := messages.TaskCompleted{Task: req.Task}
		switch req.Task {
		case messages.TaskSummary:
			done.Title = "Summary"
			done.Markdown, done.Err = study.Summarise(ctx, sess)
		case messages.TaskSections:
			done.Title = "Sections"
			var sections []domain.Section
			sections, done.Err = study.DetectSections(ctx, sess)
			done.Markdown = formatSections(sections)
		case messages.TaskAnalysis:
			done.Title = fmt.Sprintf("Section %d", req.Arg)
			done.Markdown, done.Err = study.AnalyseSection(ctx, sess, req.Arg)
		case messages.TaskConcepts:
			done.Title = "Key Concepts"
			done.Markdown, done.Err = study.KeyConcepts(ctx, sess)
		default:
			done.Err = fmt.Errorf("%w: /%s", ErrUnknownCommand, req.Task)
		}
		return done
	}
}

// snapshot copies what the header and status bar show out of the session.
// It does nothing while a command runs.
func (a *App) snapshot() {
	if a.busy {
		return
	}
	sources := a.session.Sources()
	a.sourceCount = len(sources)
	a.turnCount = len(a.session.Turns())
	if len(sources) == 0 {
		a.corpusLine = ""
		return
	}
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}
	corpus := a.session.Corpus()
	a.corpusLine = fmt.Sprintf("%d sources, %d pages: %s", corpus.SourceCount, corpus.TotalUnits, strings.Join(names, ", "))
}

// refresh re-renders the transcript and status counters.
func (a *App) refresh() {
	a.snapshot()
	a.status.SetCounts(a.sourceCount, a.turnCount)

	var b strings.Builder
	for i, e := range a.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch {
		case e.isErr:
			b.WriteString(a.styles.Error.Render(e.author + ": " + e.body))
			continue
		case e.isUser:
			b.WriteString(a.styles.UserTurn.Render(e.author))
		default:
			b.WriteString(a.styles.Subtitle.Render(e.author))
		}
		b.WriteString("\n")
		b.WriteString(a.styles.Normal.Width(a.viewport.Width).Render(e.body))
	}
	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.viewHeader(),
		a.viewport.View(),
		a.input.View(),
		a.status.View(),
	)
}

func (a *App) viewHeader() string {
	title := a.styles.Title.Render("studydeck")
	summary := a.corpusLine
	if summary == "" {
		summary = "no sources loaded"
	}
	return a.styles.Header.Width(a.width).Render(title + "  " + a.styles.Muted.Render(summary))
}

// SetDimensions resizes every component to the terminal.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	transcript := height - headerHeight - inputHeight - statusHeight
	if transcript < 3 {
		transcript = 3
	}
	a.viewport.Width = width
	a.viewport.Height = transcript
	a.input.SetWidth(width)
	a.status.SetWidth(width)
	a.refresh()
}

// Busy reports whether an action is running.
func (a *App) Busy() bool {
	return a.busy
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// Transcript returns the plain transcript text, for tests and exports.
func (a *App) Transcript() string {
	var b strings.Builder
	for _, e := range a.entries {
		fmt.Fprintf(&b, "%s: %s\n", e.author, e.body)
	}
	return b.String()
}

// Run starts the console.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

func formatSources(sources []domain.Source) string {
	if len(sources) == 0 {
		return "No sources loaded."
	}
	lines := make([]string, 0, len(sources))
	for i, src := range sources {
		lines = append(lines, fmt.Sprintf("%d. %s (%s, %d pages)", i+1, src.Name, src.Kind.Label(), src.UnitCount))
	}
	return strings.Join(lines, "\n")
}

func formatSections(sections []domain.Section) string {
	if len(sections) == 0 {
		return ""
	}
	lines := make([]string, 0, len(sections))
	for _, sec := range sections {
		line := fmt.Sprintf("%d. %s (pages %d-%d)", sec.Index, sec.Title, sec.StartUnit, sec.EndUnit)
		if sec.ShortDescription != "" {
			line += ": " + sec.ShortDescription
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n\nUse /analyse N for a deep dive."
}
