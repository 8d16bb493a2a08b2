// Package tui is the interactive terminal front end: two operand fields, a
// strategy selector and the result of the last run.
package tui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/config"
	"github.com/agbru/digitcalc/internal/digits"
	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/agbru/digitcalc/internal/format"
	"github.com/agbru/digitcalc/internal/orchestration"
)

const (
	// allAlgorithms is the selector entry that compares every strategy.
	allAlgorithms = "all"
	historySize   = 32
	// valueEdge is how many leading and trailing digits a long result keeps.
	valueEdge      = 30
	progressWidth  = 30
	defaultTimeout = 5 * time.Minute
)

// ProgressMsg carries the average progress of the run tagged Generation.
type ProgressMsg struct {
	Generation uint64
	Value      float64
	ETA        time.Duration
}

// CalculationCompleteMsg ends a run. Final is nil when no strategy succeeded
// or when the strategies disagreed.
type CalculationCompleteMsg struct {
	Generation uint64
	Results    []orchestration.CalculationResult
	Final      *orchestration.CalculationResult
	Err        error
	ExitCode   int
	Elapsed    time.Duration
}

// Model is the root bubbletea model.
type Model struct {
	inputs  [2]textinput.Model
	focus   int
	algos   []string
	algoIdx int
	op      arith.Operation

	factory arith.CalculatorFactory
	options arith.Options
	timeout time.Duration

	keymap KeyMap
	help   help.Model
	header HeaderModel
	ref    *programRef

	parentCtx  context.Context
	cancel     context.CancelFunc
	generation uint64
	running    bool
	progress   float64
	eta        time.Duration

	last     *CalculationCompleteMsg
	inputErr error
	history  *RingBuffer
	exitCode int
	width    int
}

// NewModel builds the screen, prefilled from cfg: operands, strategy,
// operation, limits and timeout.
func NewModel(parentCtx context.Context, factory arith.CalculatorFactory, cfg config.AppConfig, version string) Model {
	var inputs [2]textinput.Model
	for i, v := range []string{cfg.A, cfg.B} {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%c: ", 'A'+i)
		in.Placeholder = "decimal digits"
		if cfg.MaxDigits > 0 {
			in.CharLimit = cfg.MaxDigits
		}
		in.SetValue(v)
		inputs[i] = in
	}
	inputs[0].Focus()

	algos := append(factory.List(), allAlgorithms)
	algoIdx := max(slices.Index(algos, cfg.Algo), 0)

	op, err := cfg.Operation()
	if err != nil {
		op = arith.OpMultiply
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return Model{
		inputs:    inputs,
		algos:     algos,
		algoIdx:   algoIdx,
		op:        op,
		factory:   factory,
		options:   cfg.ToCalculationOptions(),
		timeout:   timeout,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		header:    NewHeaderModel(version),
		ref:       &programRef{},
		parentCtx: parentCtx,
		history:   NewRingBuffer(historySize),
		exitCode:  apperrors.ExitSuccess,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation && m.running {
			m.progress = msg.Value
			m.eta = msg.ETA
		}
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.finish(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Cancel):
		if m.running && m.cancel != nil {
			m.cancel()
			m.header.SetStatus("Canceling")
		}
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		if m.running {
			return m, nil
		}
		return m.submit()

	case key.Matches(msg, m.keymap.NextField), key.Matches(msg, m.keymap.PrevField):
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		return m, m.inputs[m.focus].Focus()

	case key.Matches(msg, m.keymap.NextAlgo):
		m.algoIdx = (m.algoIdx + 1) % len(m.algos)
		return m, nil

	case key.Matches(msg, m.keymap.PrevAlgo):
		m.algoIdx = (m.algoIdx + len(m.algos) - 1) % len(m.algos)
		return m, nil

	case key.Matches(msg, m.keymap.ToggleOp):
		if m.op == arith.OpMultiply {
			m.op = arith.OpAdd
		} else {
			m.op = arith.OpMultiply
		}
		return m, nil
	}

	m.inputErr = nil
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit parses both fields and starts a run. A field that is not a
// numeral is reported without starting anything.
func (m Model) submit() (tea.Model, tea.Cmd) {
	var operands [2]digits.BigInt
	for i, in := range m.inputs {
		v, err := digits.Parse(strings.TrimSpace(in.Value()))
		if err != nil {
			m.inputErr = apperrors.WrapError(err, "operand %c", 'a'+i)
			return m, nil
		}
		operands[i] = v
	}

	algo := m.algos[m.algoIdx]
	calculators := orchestration.GetCalculatorsToRun(algo, m.factory)
	if len(calculators) == 0 {
		m.inputErr = &arith.UnknownCalculatorError{Name: algo}
		return m, nil
	}

	m.inputErr = nil
	m.generation++
	ctx, cancel := context.WithTimeout(m.parentCtx, m.timeout)
	m.cancel = cancel
	m.running = true
	m.progress, m.eta = 0, 0
	m.header.SetStatus("Computing")

	req := orchestration.Request{Op: m.op, A: operands[0], B: operands[1], Options: m.options}
	return m, startCalculationCmd(m.ref, ctx, calculators, req, m.generation)
}

func (m *Model) finish(msg CalculationCompleteMsg) {
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
	m.last = &msg
	m.exitCode = msg.ExitCode

	switch {
	case msg.Final != nil:
		m.history.Push(float64(msg.Final.Alloc.Peak))
		m.header.SetStatus("Done in " + format.FormatExecutionDuration(msg.Elapsed))
	case msg.ExitCode == apperrors.ExitErrorMismatch:
		m.header.SetStatus("Mismatch")
	default:
		m.header.SetStatus("Failed")
	}
}

func (m Model) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s (%s)\n",
		labelStyle.Render("Operation:"), valueStyle.Render(m.op.String()), m.op.Symbol())
	for _, in := range m.inputs {
		b.WriteString(in.View() + "\n")
	}

	names := make([]string, len(m.algos))
	for i, name := range m.algos {
		if i == m.algoIdx {
			names[i] = selectedStyle.Render(name)
		} else {
			names[i] = unselectedStyle.Render(name)
		}
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Algorithm:"), strings.Join(names, "  "))

	switch {
	case m.running:
		fmt.Fprintf(&b, "\n%s [%s] %.0f%% ETA %s\n", warningStyle.Render("Computing"),
			format.ProgressBar(m.progress, progressWidth), m.progress*100, format.FormatETA(m.eta))
	case m.inputErr != nil:
		fmt.Fprintf(&b, "\n%s\n", errorStyle.Render(m.inputErr.Error()))
	case m.last != nil:
		b.WriteString("\n" + m.resultView())
	}

	if m.history.Len() > 0 {
		fmt.Fprintf(&b, "\n%s %s %s\n", labelStyle.Render("Peak history:"),
			successStyle.Render(RenderSparkline(m.history.Slice())),
			dimStyle.Render(format.FormatBytes(uint64(m.history.Last()))))
	}

	body := panelStyle.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.help.View(m.keymap))
}

func (m Model) resultView() string {
	var b strings.Builder
	last := m.last

	if len(last.Results) > 1 {
		for _, r := range last.Results {
			status := successStyle.Render("ok")
			if r.Err != nil {
				status = errorStyle.Render(r.Err.Error())
			}
			fmt.Fprintf(&b, "  %-44s %10s %12s  %s\n", r.Name,
				format.FormatExecutionDuration(r.Duration), format.FormatBytes(r.Alloc.Peak), status)
		}
		b.WriteString("\n")
	}

	switch {
	case last.Final != nil:
		f := last.Final
		value := f.Result.String()
		fmt.Fprintf(&b, "%s %s   %s %s   %s %s   %s %s\n",
			labelStyle.Render("Digits:"), valueStyle.Render(format.FormatNumberString(fmt.Sprint(len(value)))),
			labelStyle.Render("Time:"), valueStyle.Render(format.FormatExecutionDuration(f.Duration)),
			labelStyle.Render("Peak buffer:"), valueStyle.Render(format.FormatBytes(f.Alloc.Peak)),
			labelStyle.Render("Allocations:"), valueStyle.Render(fmt.Sprint(f.Alloc.Allocs)))
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("="), successStyle.Render(shorten(value)))
	case last.ExitCode == apperrors.ExitErrorMismatch:
		b.WriteString(errorStyle.Render("The strategies disagree on the result.") + "\n")
	case last.Err != nil:
		b.WriteString(errorStyle.Render("Error: "+last.Err.Error()) + "\n")
	}
	return b.String()
}

// shorten keeps the edges of long values.
func shorten(s string) string {
	if len(s) <= 2*valueEdge+3 {
		return s
	}
	return s[:valueEdge] + "..." + s[len(s)-valueEdge:]
}

// ExitCode is the exit code of the last finished run.
func (m Model) ExitCode() int { return m.exitCode }

// Run starts the TUI and blocks until the user quits. It returns the exit
// code of the last run.
func Run(ctx context.Context, factory arith.CalculatorFactory, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(err) || ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.ExitCode()
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd runs the calculators through the orchestration layer
// and reports the outcome as one CalculationCompleteMsg.
func startCalculationCmd(ref *programRef, ctx context.Context, calculators []arith.Calculator, req orchestration.Request, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{}

		start := time.Now()
		results := orchestration.ExecuteCalculations(ctx, calculators, req, reporter, io.Discard)
		opts := orchestration.PresentationOptions{Op: req.Op, A: req.A, B: req.B}
		exitCode := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, io.Discard)

		return CalculationCompleteMsg{
			Generation: gen,
			Results:    presenter.results,
			Final:      presenter.final,
			Err:        presenter.err,
			ExitCode:   exitCode,
			Elapsed:    time.Since(start),
		}
	}
}
