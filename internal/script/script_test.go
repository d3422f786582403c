/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formsketch/internal/form"
	"formsketch/internal/geom"
	"formsketch/internal/session"
)

const classifyScript = `
mode: classify
canvas: {width: 800, height: 600}
steps:
  - {op: down, at: [10, 10]}
  - {op: move, at: [310, 260]}
  - {op: up, label: panel}
  - {op: down, at: [5, 5], in: panel}
  - {op: move, at: [205, 40]}
  - {op: leave, label: name}
  - {op: relocate, target: name, at: [20, 30]}
`

const menuScript = `
mode: menu
steps:
  - {op: down, at: [10, 10]}
  - {op: move, at: [210, 40]}
  - {op: up}
  - {op: drop, kind: button, at: [400, 300], label: ok}
  - {op: drop, kind: card, at: [0, 0], label: box}
  - {op: drop, kind: textarea, at: [0, 0], in: box}
  - {op: undo}
`

func replay(t *testing.T, doc string) (*Result, *session.Session) {
	t.Helper()
	sc, err := Parse([]byte(doc))
	require.NoError(t, err)
	s, err := NewSession(sc, session.Options{})
	require.NoError(t, err)
	res, err := Replay(context.Background(), sc, s)
	require.NoError(t, err)
	return res, s
}

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(classifyScript))
	require.NoError(t, err)
	assert.Equal(t, "classify", sc.Mode)
	assert.Equal(t, &Canvas{Width: 800, Height: 600}, sc.Canvas)
	require.Len(t, sc.Steps, 7)
	assert.Equal(t, Step{Op: OpDown, At: []float32{5, 5}, In: "panel"}, sc.Steps[3])
}

func TestParseAcceptsJSON(t *testing.T) {
	sc, err := Parse([]byte(`{"steps":[{"op":"drop","kind":"input","at":[1,2]}]}`))
	require.NoError(t, err)
	assert.Empty(t, sc.Mode)
	assert.Equal(t, "input", sc.Steps[0].Kind)
}

func TestValidateReportsEveryIssue(t *testing.T) {
	err := Validate([]byte(`
mode: lasso
steps:
  - {op: down}
  - {op: drop, kind: slider, at: [1, 2]}
  - {op: jump}
  - {op: move, at: [1]}
`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.GreaterOrEqual(t, len(ve.Issues), 5)

	fields := make([]string, 0, len(ve.Issues))
	for _, i := range ve.Issues {
		fields = append(fields, i.Field)
	}
	assert.Contains(t, fields, "mode")
	assert.Contains(t, fields, "steps.1.kind")
	assert.Contains(t, fields, "steps.2.op")
	assert.Contains(t, ve.Error(), "script is invalid")
}

func TestValidateRejectsEmptyAndMalformed(t *testing.T) {
	var ve *ValidationError
	assert.True(t, errors.As(Validate([]byte("")), &ve))
	assert.True(t, errors.As(Validate([]byte("mode: menu\n")), &ve), "steps are required")

	err := Validate([]byte("steps: [\n"))
	require.Error(t, err)
	assert.False(t, errors.As(err, &ve))
}

func TestReplayClassify(t *testing.T) {
	res, s := replay(t, classifyScript)

	assert.Equal(t, 7, res.Steps)
	assert.Equal(t, 3, res.Changed)
	require.Contains(t, res.Labels, "panel")
	require.Contains(t, res.Labels, "name")

	require.Len(t, res.Elements, 1)
	card := res.Elements[0]
	assert.Equal(t, form.KindCard, card.Kind())
	assert.Equal(t, res.Labels["panel"], card.Info().ID)

	child, ok := s.Find(res.Labels["name"])
	require.True(t, ok)
	assert.Equal(t, form.KindTextInput, child.Kind())
	assert.Equal(t, card.Info().ID, child.Info().ParentID)
	assert.Equal(t, geom.R(20, 30, 200, 35), child.Info().Geometry)
}

func TestReplayMenu(t *testing.T) {
	res, s := replay(t, menuScript)

	assert.Equal(t, session.ModeMenu, s.Mode())
	assert.Equal(t, 4, res.Changed)
	require.Len(t, res.Elements, 2)
	assert.Equal(t, geom.R(400, 300, 100, 40), res.Elements[0].Info().Geometry)
	assert.Empty(t, form.Children(res.Elements[1]), "undo removed the nested textarea")
}

func TestReplayRedoAfterUndo(t *testing.T) {
	res, _ := replay(t, menuScript+"  - {op: redo}\n  - {op: redo}\n")

	assert.Equal(t, 5, res.Changed, "second redo has nothing to re-apply")
	require.Len(t, res.Elements, 2)
	assert.Len(t, form.Children(res.Elements[1]), 1)
}

func TestReplayUnknownLabel(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - {op: drop, kind: button, at: [0, 0], in: ghost}
`))
	require.NoError(t, err)
	s, _ := NewSession(sc, session.Options{})
	_, err = Replay(context.Background(), sc, s)

	var se *StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Index)
	assert.Contains(t, err.Error(), `unknown label "ghost"`)
}

func TestReplayLabelWithoutElement(t *testing.T) {
	sc, err := Parse([]byte(`
mode: classify
steps:
  - {op: down, at: [0, 0]}
  - {op: move, at: [5, 5]}
  - {op: up, label: tiny}
`))
	require.NoError(t, err)
	s, _ := NewSession(sc, session.Options{})
	res, err := Replay(context.Background(), sc, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 3 (up)")
	assert.Zero(t, len(res.Elements))
}

func TestReplayModeMismatch(t *testing.T) {
	sc, err := Parse([]byte(classifyScript))
	require.NoError(t, err)
	_, err = Replay(context.Background(), sc, session.New(session.Options{Mode: session.ModeMenu}))
	assert.Error(t, err)
}

func TestReplayHonoursCancellation(t *testing.T) {
	sc, err := Parse([]byte(menuScript))
	require.NoError(t, err)
	s, _ := NewSession(sc, session.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Replay(ctx, sc, s)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Steps)
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(p, []byte(menuScript), 0o644))
	sc, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, sc.Steps, 7)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("steps: [{op: nope}]"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), bad))
}

func TestSchemaIsEmbedded(t *testing.T) {
	assert.Contains(t, string(Schema()), "gesture script")
}
