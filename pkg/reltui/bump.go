package reltui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ceesaxp/beads/pkg/log"
	"github.com/Ceesaxp/beads/pkg/relcmd"
)

// Bumper is the release operation driven by the TUI.
type Bumper interface {
	Bump(ctx context.Context, targetVersion string, commit bool) (*relcmd.Report, error)
	Subscribe(f func(any))
}

// BumpTUI runs a bump while rendering per-file progress.
type BumpTUI struct {
	pkg Bumper
	p   *tea.Program
	w   io.Writer
}

// NewBumpTUI creates a [BumpTUI] and redirects slog into its scrollback, so
// log records print above the viewport instead of corrupting the render.
func NewBumpTUI(w io.Writer, logLevel string, pkg Bumper) (*BumpTUI, error) {
	c := &BumpTUI{
		pkg: pkg,
		w:   w,
	}

	c.pkg.Subscribe(c.broadcastEvent)

	logger, err := log.CreateHandler(c, logLevel, log.TextFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logger))

	return c, nil
}

func (c *BumpTUI) broadcastEvent(evt any) {
	if c.p != nil {
		c.p.Send(evt)
	}
}

// Write forwards log output into the TUI's scrollback.
func (c *BumpTUI) Write(p []byte) (int, error) {
	c.broadcastEvent(teaMsgWriteLog(string(p)))

	return len(p), nil
}

// Bump runs the release bump under the TUI and returns its report.
func (c *BumpTUI) Bump(ctx context.Context, targetVersion string, commit bool) (*relcmd.Report, error) {
	c.p = tea.NewProgram(NewBumpModel(targetVersion), tea.WithOutput(c.w))

	var (
		report  *relcmd.Report
		bumpErr error
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		// relcmd broadcasts EventDone, which quits the program.
		report, bumpErr = c.pkg.Bump(ctx, targetVersion, commit)
	}()

	if _, err := c.p.Run(); err != nil {
		return nil, fmt.Errorf("failed to launch tui: %w", err)
	}

	<-done

	return report, bumpErr
}

// BumpModel renders rewrite progress for one bump run.
type BumpModel struct {
	err            error
	targetVersion  string
	startedFiles   []string
	completedFiles []string
	erroredFiles   []string
	spinner        spinner.Model
	progress       progress.Model
	totalFiles     int
	width          int
	height         int
	mu             sync.RWMutex
	committed      bool
	done           bool
}

func NewBumpModel(targetVersion string) *BumpModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	s := spinner.New()
	s.Style = spinnerStyle

	return &BumpModel{
		targetVersion:  targetVersion,
		startedFiles:   []string{},
		completedFiles: []string{},
		erroredFiles:   []string{},
		spinner:        s,
		progress:       p,
		mu:             sync.RWMutex{},
	}
}

func (m *BumpModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.progress.SetPercent(0))
}

//nolint:ireturn // Third-party.
func (m *BumpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if keyExits(msg) {
			return m, tea.Quit
		}

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)

	case relcmd.EventSetFileTotal:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.totalFiles = int(msg)

	case relcmd.EventRewritingFile:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.startedFiles = append(m.startedFiles, string(msg))

	case relcmd.EventRewroteFile:
		m.mu.Lock()
		defer m.mu.Unlock()

		icon := checkMark
		if msg.Err != nil {
			m.erroredFiles = append(m.erroredFiles, msg.Path)
			icon = errorMark
		}

		m.completedFiles = append(m.completedFiles, msg.Path)
		completedCount := len(m.completedFiles)

		var progressCmd tea.Cmd
		if m.totalFiles > 0 {
			progressCmd = m.progress.SetPercent(float64(completedCount) / float64(m.totalFiles))
		}

		return m, tea.Batch(
			progressCmd,
			tea.Printf("%s %s", icon, msg.Path),
		)

	case relcmd.EventCommitted:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.committed = true

	case relcmd.EventDone:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.err = msg.Err
		m.done = true

		return m, teaQuit()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}

		return m, cmd
	}

	return m, nil
}

func (m *BumpModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return getErrorMessage(m.err, m.width)
	}

	completedCount := len(m.completedFiles)

	if m.done {
		summary := fmt.Sprintf("Synchronized %d file(s) to version %s.", completedCount, m.targetVersion)
		if m.committed {
			summary += " Commit created."
		}

		return doneStyle.Render(summary + "\n")
	}

	fileCount := fmt.Sprintf(" %*d/%d", lenDigits(m.totalFiles), completedCount, m.totalFiles)

	spin := m.spinner.View() + " "
	prog := m.progress.View()

	var current string
	if n := len(m.startedFiles); n > 0 && n > len(m.completedFiles) {
		current = "Rewriting " + currentFileStyle.Render(m.startedFiles[n-1])
	}

	cellsAvail := max(0, m.width-lipgloss.Width(spin+prog+fileCount))
	current = lipgloss.NewStyle().MaxWidth(cellsAvail).Render(current)

	cellsRemaining := max(0, m.width-lipgloss.Width(spin+current+prog+fileCount))
	gap := strings.Repeat(" ", cellsRemaining)

	return spin + current + gap + prog + fileCount
}

func lenDigits(n int) int {
	return len(strconv.Itoa(n))
}
