// Package tui is the interactive front end: pick a PDF, run it, look at the
// scores and a preview of the table, save the workbook.
package tui

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/pipeline"
	"github.com/joseph-ayodele/docsheet/internal/session"
)

// Runner is the part of pipeline.Processor the TUI drives.
type Runner interface {
	ProcessBytes(ctx context.Context, name string, data []byte) (*pipeline.RunResult, error)
	SaveOutputs(res *pipeline.RunResult, opts pipeline.SaveOptions) (pipeline.Saved, error)
}

type state int

const (
	stateInput state = iota
	stateRunning
	stateResult
)

type runDoneMsg struct {
	res    *pipeline.RunResult
	cached bool
	err    error
}

type savedMsg struct {
	saved pipeline.Saved
	err   error
}

// Options configures a Model.
type Options struct {
	Runner  Runner
	Cache   *session.Cache // optional; reuses results for identical bytes
	Save    pipeline.SaveOptions
	Preview int // table rows shown, default 10
	Path    string
}

// Model is the bubbletea model. The last run lives in result and is handed
// to the render functions; nothing outside the model holds it.
type Model struct {
	opts    Options
	styles  Styles
	state   state
	input   textinput.Model
	spinner spinner.Model
	preview btable.Model

	ctx    context.Context
	result *pipeline.RunResult
	cached bool
	saved  *pipeline.Saved
	err    error
	width  int
}

func New(ctx context.Context, opts Options) Model {
	if opts.Preview <= 0 {
		opts.Preview = 10
	}
	ti := textinput.New()
	ti.Placeholder = "path/to/document.pdf"
	ti.Prompt = "PDF: "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.SetValue(opts.Path)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		opts:    opts,
		styles:  DefaultStyles(),
		input:   ti,
		spinner: sp,
		ctx:     ctx,
		width:   100,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Result returns the last successful run, if any.
func (m Model) Result() *pipeline.RunResult { return m.result }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateInput:
			return m.updateInput(msg)
		case stateResult:
			return m.updateResult(msg)
		}
		return m, nil

	case runDoneMsg:
		m.err = msg.err
		if msg.err != nil {
			m.state = stateInput
			m.input.Focus()
			return m, nil
		}
		m.result = msg.res
		m.cached = msg.cached
		m.saved = nil
		m.preview = newPreview(msg.res, m.opts.Preview)
		m.state = stateResult
		return m, nil

	case savedMsg:
		m.err = msg.err
		if msg.err == nil {
			s := msg.saved
			m.saved = &s
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return m, nil
		}
		m.state = stateRunning
		m.err = nil
		m.input.Blur()
		return m, tea.Batch(m.spinner.Tick, m.run(path))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "s":
		return m, m.save()
	case "n":
		m.state = stateInput
		m.err = nil
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) run(path string) tea.Cmd {
	r, c, ctx := m.opts.Runner, m.opts.Cache, m.ctx
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return runDoneMsg{err: common.NewKindError(common.KindFileIO, "cannot read "+path, err)}
		}
		if c != nil {
			if res, ok := c.ByHash(pipeline.HashBytes(data)); ok {
				return runDoneMsg{res: res, cached: true}
			}
		}
		res, err := r.ProcessBytes(ctx, path, data)
		if err == nil && c != nil {
			c.Put(res)
		}
		return runDoneMsg{res: res, err: err}
	}
}

func (m Model) save() tea.Cmd {
	r, res, opts := m.opts.Runner, m.result, m.opts.Save
	return func() tea.Msg {
		saved, err := r.SaveOutputs(res, opts)
		return savedMsg{saved: saved, err: err}
	}
}

func (m Model) View() string {
	switch m.state {
	case stateRunning:
		return m.spinner.View() + " Extracting and scoring " + strings.TrimSpace(m.input.Value()) + "...\n"
	case stateResult:
		return renderResult(m.styles, m.result, resultView{
			cached:  m.cached,
			saved:   m.saved,
			err:     m.err,
			preview: m.preview.View(),
		})
	default:
		return renderInput(m.styles, m.input.View(), m.err)
	}
}
