package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsheet/internal/evaluate"
	"github.com/joseph-ayodele/docsheet/internal/pipeline"
	"github.com/joseph-ayodele/docsheet/internal/session"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

type fakeRunner struct {
	calls int
	saves int
}

func (f *fakeRunner) ProcessBytes(_ context.Context, name string, data []byte) (*pipeline.RunResult, error) {
	f.calls++
	t := table.Materialize([]table.Record{{Key: "Name", Value: "Alice"}, {Key: "Age", Value: "30"}})
	return &pipeline.RunResult{
		ID:         "run-1",
		SourcePath: name,
		SourceHash: pipeline.HashBytes(data),
		Table:      t,
		Score:      evaluate.Evaluate(t, string(data)),
		Weighted:   evaluate.EvaluateWeighted(t, string(data)),
		Stats:      pipeline.Stats{Records: 2, UniqueKeys: 2},
	}, nil
}

func (f *fakeRunner) SaveOutputs(_ *pipeline.RunResult, opts pipeline.SaveOptions) (pipeline.Saved, error) {
	f.saves++
	return pipeline.Saved{XLSX: filepath.Join(opts.Dir, "structured_output_x.xlsx")}, nil
}

func writeDoc(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "alice.pdf")
	require.NoError(t, os.WriteFile(p, []byte("Name: Alice. Age: 30."), 0o644))
	return p
}

func step(t *testing.T, m tea.Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_RunAndSave(t *testing.T) {
	r := &fakeRunner{}
	path := writeDoc(t)
	m := New(context.Background(), Options{Runner: r, Path: path, Save: pipeline.SaveOptions{Dir: "out"}})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, stateRunning, m.state)
	assert.Contains(t, m.View(), "Extracting and scoring")

	m, _ = step(t, m, m.run(path)())
	require.Equal(t, stateResult, m.state)
	require.NotNil(t, m.Result())
	view := m.View()
	assert.Contains(t, view, "78/100")
	assert.Contains(t, view, "Grade B")
	assert.Contains(t, view, "Structure Validation")
	assert.Contains(t, view, "Alice")

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())
	assert.Equal(t, 1, r.saves)
	assert.Contains(t, m.View(), "Saved "+filepath.Join("out", "structured_output_x.xlsx"))

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, stateInput, m.state)
	assert.NotNil(t, m.Result(), "last result survives starting a new document")
}

func TestModel_CacheHit(t *testing.T) {
	r := &fakeRunner{}
	path := writeDoc(t)
	c := session.New(time.Minute, time.Minute)
	m := New(context.Background(), Options{Runner: r, Cache: c})

	first := m.run(path)().(runDoneMsg)
	second := m.run(path)().(runDoneMsg)

	require.NoError(t, first.err)
	assert.False(t, first.cached)
	assert.True(t, second.cached)
	assert.Same(t, first.res, second.res)
	assert.Equal(t, 1, r.calls)

	m, _ = step(t, m, second)
	assert.Contains(t, m.View(), "(cached)")
}

func TestModel_ReadError(t *testing.T) {
	r := &fakeRunner{}
	m := New(context.Background(), Options{Runner: r})
	m.state = stateRunning

	m, _ = step(t, m, m.run(filepath.Join(t.TempDir(), "missing.pdf"))())

	assert.Equal(t, stateInput, m.state)
	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "File error")
	assert.Equal(t, 0, r.calls)
}

func TestModel_EnterWithEmptyPathDoesNothing(t *testing.T) {
	m := New(context.Background(), Options{Runner: &fakeRunner{}})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, stateInput, m.state)
}
