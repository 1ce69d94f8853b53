package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// progressDisplay receives completion percentages from the simulation.
// Update may be called from simulation goroutines and must be fast.
type progressDisplay interface {
	Update(percent float64)
	Close()
}

// noProgress swallows updates, used for JSON output and --no-progress.
type noProgress struct{}

func (noProgress) Update(float64) {}
func (noProgress) Close()         {}

// dotMonitor prints a row of dots, one per 2.5% of progress, for terminals
// that cannot render a live bar.
type dotMonitor struct {
	mu      sync.Mutex
	out     io.Writer
	printed int
	closed  bool
}

const dotsTotal = 40

func newDotMonitor(out io.Writer) *dotMonitor {
	return &dotMonitor{out: out}
}

func (m *dotMonitor) Update(percent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	target := int(percent) * dotsTotal / 100
	if target > dotsTotal {
		target = dotsTotal
	}
	for i := m.printed; i < target; i++ {
		fmt.Fprint(m.out, ".")
		m.printed++
	}
}

func (m *dotMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	if m.printed > 0 {
		fmt.Fprintln(m.out)
	}
}

// progressBar renders a live Bubble Tea progress bar on stderr. Ctrl+C in
// the bar cancels the simulation through the supplied cancel func.
type progressBar struct {
	program *tea.Program
	done    chan struct{}
}

type percentMsg float64

type finishedMsg struct{}

func newProgressBar(cancel context.CancelFunc) *progressBar {
	model := barModel{
		bar:    progress.New(progress.WithDefaultGradient()),
		cancel: cancel,
	}
	program := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithoutSignalHandler(),
	)

	b := &progressBar{
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		defer close(b.done)
		_, _ = program.Run()
	}()
	return b
}

func (b *progressBar) Update(percent float64) {
	b.program.Send(percentMsg(percent))
}

func (b *progressBar) Close() {
	b.program.Send(finishedMsg{})
	<-b.done
}

type barModel struct {
	bar     progress.Model
	percent float64
	cancel  context.CancelFunc
}

func (m barModel) Init() tea.Cmd {
	return nil
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		if m.bar.Width > 80 {
			m.bar.Width = 80
		}
		return m, nil

	case percentMsg:
		m.percent = float64(msg)
		return m, nil

	case finishedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m barModel) View() string {
	return m.bar.ViewAs(m.percent/100) + "\n"
}
