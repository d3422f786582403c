/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package history

import (
	"testing"

	"formsketch/internal/form"
	"formsketch/internal/geom"
	"formsketch/internal/placement"
)

func snap(ids ...string) placement.Snapshot {
	out := make(placement.Snapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, form.New(form.KindButton, id, "", geom.R(0, 0, 100, 40)))
	}
	return out
}

func ids(s placement.Snapshot) []string {
	var out []string
	for _, e := range s {
		out = append(out, e.Info().ID)
	}
	return out
}

func TestStartsAtEmptySnapshot(t *testing.T) {
	s := NewStack(Config{})
	if s.Step() != 0 || s.Len() != 1 || s.CanUndo() {
		t.Fatalf("unexpected initial state step=%d len=%d canUndo=%v", s.Step(), s.Len(), s.CanUndo())
	}
	if len(s.Current()) != 0 {
		t.Fatalf("expected empty base snapshot, got %v", ids(s.Current()))
	}
	if _, ok := s.Undo(); ok {
		t.Fatalf("undo at step 0 must be a no-op")
	}
	if s.Step() != 0 {
		t.Fatalf("cursor moved on no-op undo: %d", s.Step())
	}
}

func TestPushUndoRedo(t *testing.T) {
	s := NewStack(Config{})
	s.Push(snap("a"))
	s.Push(snap("a", "b"))
	if s.Step() != 2 || s.Len() != 3 {
		t.Fatalf("expected step 2 len 3, got step=%d len=%d", s.Step(), s.Len())
	}
	got, ok := s.Undo()
	if !ok || len(got) != 1 || got[0].Info().ID != "a" {
		t.Fatalf("undo expected [a], got ok=%v %v", ok, ids(got))
	}
	got, ok = s.Undo()
	if !ok || len(got) != 0 {
		t.Fatalf("second undo expected empty sketch, got ok=%v %v", ok, ids(got))
	}
	got, ok = s.Redo()
	if !ok || len(got) != 1 {
		t.Fatalf("redo expected [a], got ok=%v %v", ok, ids(got))
	}
	if !s.CanRedo() {
		t.Fatalf("expected a further redo step")
	}
}

func TestPushTruncatesForwardHistory(t *testing.T) {
	s := NewStack(Config{})
	s.Push(snap("a"))
	s.Push(snap("a", "b"))
	s.Undo()
	s.Push(snap("a", "c"))

	if s.Len() != 3 || s.Step() != 2 {
		t.Fatalf("expected len 3 step 2 after truncation, got len=%d step=%d", s.Len(), s.Step())
	}
	if _, ok := s.Redo(); ok {
		t.Fatalf("redo must be empty after a push")
	}
	if got := ids(s.Current()); len(got) != 2 || got[1] != "c" {
		t.Fatalf("expected [a c], got %v", got)
	}
}

func TestTruncationDoesNotClobberEarlierEntries(t *testing.T) {
	s := NewStack(Config{})
	s.Push(snap("a"))
	s.Push(snap("b"))
	s.Push(snap("c"))
	s.Undo()
	s.Undo()
	s.Push(snap("d"))
	s.Undo()
	got, _ := s.Redo()
	if ids(got)[0] != "d" {
		t.Fatalf("expected d, got %v", ids(got))
	}
	s.Undo()
	if ids(s.Current())[0] != "a" {
		t.Fatalf("expected a at step 1, got %v", ids(s.Current()))
	}
}

func TestMaxDepthDropsOldest(t *testing.T) {
	s := NewStack(Config{MaxDepth: 2})
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Push(snap(id))
	}
	if s.Len() != 3 || s.Step() != 2 {
		t.Fatalf("expected len 3 step 2 with cap, got len=%d step=%d", s.Len(), s.Step())
	}
	s.Undo()
	got, ok := s.Undo()
	if !ok || ids(got)[0] != "b" {
		t.Fatalf("oldest reachable snapshot should be b, got ok=%v %v", ok, ids(got))
	}
	if _, ok := s.Undo(); ok {
		t.Fatalf("expected bottom of capped history")
	}
	if NewStack(Config{MaxDepth: -3}).MaxDepth() != 0 {
		t.Fatalf("negative depth should mean unlimited")
	}
}
