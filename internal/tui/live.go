package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"loadcmp/internal/bench"
	"loadcmp/internal/metrics"
	"loadcmp/internal/tui/styles"
)

type doneMsg struct {
	agg *metrics.Aggregate
}

// Model renders a running benchmark: metric boxes, an RPS sparkline,
// a latency sparkline, and a progress bar. It quits itself once the
// run's aggregate arrives.
type Model struct {
	updates bench.UpdateChan
	stats   bench.Snapshot

	Progress    progress.Model
	RpsLine     Sparkline
	LatencyLine Sparkline

	StartTime  time.Time
	Duration   time.Duration
	LastUpdate time.Time
	LastReqs   uint64

	agg *metrics.Aggregate

	Width  int
	Height int
}

func newModel(updates bench.UpdateChan, totalDur time.Duration) Model {
	return Model{
		updates:     updates,
		Progress:    progress.New(progress.WithDefaultGradient()),
		RpsLine:     NewSparkline(40, "RPS", styles.Active),
		LatencyLine: NewSparkline(40, "Latency P90 (ms)", styles.Warn),
		StartTime:   time.Now(),
		Duration:    totalDur,
		LastUpdate:  time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return listen(m.updates)
}

func listen(ch bench.UpdateChan) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bench.Snapshot:
		now := time.Now()
		dt := now.Sub(m.LastUpdate).Seconds()
		if dt < 0.01 {
			dt = 0.01
		}

		deltaReqs := msg.Requests - m.LastReqs
		m.RpsLine.Add(uint64(float64(deltaReqs) / dt))
		m.LatencyLine.Add(uint64(msg.P90Ms))

		m.stats = msg
		m.LastReqs = msg.Requests
		m.LastUpdate = now

		elapsed := time.Since(m.StartTime)
		pct := float64(elapsed) / float64(m.Duration)
		if pct > 1.0 {
			pct = 1.0
		}
		return m, tea.Batch(m.Progress.SetPercent(pct), listen(m.updates))

	case doneMsg:
		m.agg = msg.agg
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Progress.Width = msg.Width - 4

		half := (msg.Width / 2) - 4
		if half < 10 {
			half = 10
		}
		m.RpsLine.Width = half
		m.LatencyLine.Width = half
		return m, nil

	case progress.FrameMsg:
		prog, cmd := m.Progress.Update(msg)
		m.Progress = prog.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	s := strings.Builder{}

	reqs := m.stats.Requests
	errRate := 0.0
	if reqs > 0 {
		errRate = float64(m.stats.Fail) / float64(reqs) * 100
	}

	var errColor lipgloss.Style
	switch {
	case errRate > 5.0:
		errColor = styles.Error
	case errRate > 1.0:
		errColor = styles.Warn
	default:
		errColor = styles.Active
	}

	col1 := fmt.Sprintf("REQ: %d\nOK:  %d", reqs, m.stats.Success)
	col2 := fmt.Sprintf("ERR: %.2f%%\nFAIL: %d", errRate, m.stats.Fail)
	col3 := fmt.Sprintf("KB: %d\nMAX: %d ms", m.stats.Bytes/1024, m.stats.MaxMs)

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Box.Render(col1),
		styles.Box.Render(errColor.Render(col2)),
		styles.Box.Render(col3),
	))
	s.WriteString("\n\n")

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Box.Render(m.RpsLine.View()),
		styles.Box.Render(m.LatencyLine.View()),
	))
	s.WriteString("\n\n")

	latencies := fmt.Sprintf(
		"AVG: %.2f ms  |  P50: %.2f ms  |  P90: %.2f ms  |  P99: %.2f ms",
		m.stats.AvgMs,
		m.stats.P50Ms,
		m.stats.P90Ms,
		m.stats.P99Ms,
	)
	s.WriteString(styles.Box.Render(latencies))
	s.WriteString("\n\n")

	s.WriteString(m.Progress.View())
	s.WriteString("\n")
	s.WriteString(styles.Subtle.Render("q to abort"))

	return s.String()
}

// Run drives one benchmark behind the live view and returns its
// aggregate. Quitting the view early cancels the run between requests;
// the partial aggregate is still returned.
func Run(ctx context.Context, lt *bench.LoadTester, label string) (*metrics.Aggregate, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newModel(lt.Updates, lt.TotalDuration())
	p := tea.NewProgram(m)

	done := make(chan *metrics.Aggregate, 1)
	go func() {
		agg := lt.Run(runCtx, label)
		done <- agg
		p.Send(doneMsg{agg: agg})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	if fm, ok := final.(Model); ok && fm.agg != nil {
		return fm.agg, nil
	}

	// Quit before completion: stop the workers and take what finished.
	cancel()
	return <-done, nil
}
