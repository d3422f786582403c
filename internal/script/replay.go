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
	"fmt"
	"log/slog"

	"formsketch/internal/form"
	"formsketch/internal/geom"
	applog "formsketch/internal/log"
	"formsketch/internal/placement"
	"formsketch/internal/session"
)

// Result is the outcome of a replay.
type Result struct {
	// Labels maps script labels to element ids.
	Labels   map[string]string
	Elements placement.Snapshot
	// Changed counts steps that mutated the sketch (including undos).
	Changed int
	Steps   int
}

// NewSession builds a session in the script's mode on top of base options.
func NewSession(sc *Script, base session.Options) (*session.Session, error) {
	if sc.Mode != "" {
		mode, err := session.ParseMode(sc.Mode)
		if err != nil {
			return nil, err
		}
		base.Mode = mode
	}
	return session.New(base), nil
}

// Replay runs the steps of sc in order. It stops at the first step that
// references an unknown label or when ctx is done.
func Replay(ctx context.Context, sc *Script, s *session.Session) (*Result, error) {
	if sc == nil || s == nil {
		return nil, fmt.Errorf("replay: script and session are required")
	}
	if sc.Mode != "" && session.Mode(sc.Mode) != s.Mode() {
		return nil, fmt.Errorf("replay: script is for %q mode, session runs %q", sc.Mode, s.Mode())
	}
	l := applog.WithOperation(applog.WithComponent("script"), "replay")
	res := &Result{Labels: map[string]string{}}

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			res.Elements = s.Elements()
			return res, fmt.Errorf("replay interrupted at step %d: %w", i+1, err)
		}
		changed, err := apply(s, st, res.Labels)
		if err != nil {
			res.Elements = s.Elements()
			return res, &StepError{Index: i, Op: st.Op, Message: err.Error()}
		}
		if st.Label != "" {
			if !changed || !creates(st.Op) {
				res.Elements = s.Elements()
				return res, &StepError{Index: i, Op: st.Op, Message: fmt.Sprintf("label %q: step created no element", st.Label)}
			}
			e, _ := s.LastCreated()
			res.Labels[st.Label] = e.Info().ID
		}
		if changed {
			res.Changed++
		}
		res.Steps++
		l.Debug("step", slog.Int("index", i+1), slog.String("op", string(st.Op)), slog.Bool("changed", changed))
	}
	res.Elements = s.Elements()
	return res, nil
}

func creates(op Op) bool { return op == OpUp || op == OpLeave || op == OpDrop }

func apply(s *session.Session, st Step, labels map[string]string) (bool, error) {
	resolve := func(name string) (string, error) {
		if name == "" {
			return "", nil
		}
		id, ok := labels[name]
		if !ok {
			return "", fmt.Errorf("unknown label %q", name)
		}
		return id, nil
	}
	at := func() (geom.Pt, error) {
		if len(st.At) != 2 {
			return geom.Pt{}, fmt.Errorf("at needs [x, y]")
		}
		return geom.P(st.At[0], st.At[1]), nil
	}

	switch st.Op {
	case OpDown:
		p, err := at()
		if err != nil {
			return false, err
		}
		in, err := resolve(st.In)
		if err != nil {
			return false, err
		}
		s.PointerDown(p, in)
		return false, nil
	case OpMove:
		p, err := at()
		if err != nil {
			return false, err
		}
		s.PointerMove(p)
		return false, nil
	case OpUp:
		return s.PointerUp(), nil
	case OpLeave:
		return s.PointerLeave(), nil
	case OpDrop:
		p, err := at()
		if err != nil {
			return false, err
		}
		kind, err := form.ParseKind(st.Kind)
		if err != nil {
			return false, err
		}
		in, err := resolve(st.In)
		if err != nil {
			return false, err
		}
		return s.DropTemplate(kind, p, in), nil
	case OpRelocate:
		p, err := at()
		if err != nil {
			return false, err
		}
		id, err := resolve(st.Target)
		if err != nil {
			return false, err
		}
		if id == "" {
			return false, fmt.Errorf("relocate needs a target")
		}
		return s.Relocate(id, p.X, p.Y), nil
	case OpUndo:
		return s.Undo(), nil
	case OpRedo:
		return s.Redo(), nil
	}
	return false, fmt.Errorf("unknown op %q", st.Op)
}
