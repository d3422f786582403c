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
	"sync"

	"formsketch/internal/placement"
)

// Config controls depth caps.
type Config struct {
	// MaxDepth limits how many undo steps are kept; the oldest are dropped first (0 means unlimited).
	MaxDepth int
}

// Stack is a linear undo history: a list of snapshots and a cursor into it.
// Entry 0 is the empty sketch, so undo can always return to a blank canvas.
// It is safe for concurrent use.
type Stack struct {
	cfg     Config
	mu      sync.Mutex
	entries []placement.Snapshot
	cursor  int
}

func NewStack(cfg Config) *Stack {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	return &Stack{cfg: cfg, entries: []placement.Snapshot{nil}}
}

// Push records snap as the newest step. Anything past the cursor is discarded first.
func (s *Stack) Push(snap placement.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries[:s.cursor+1:s.cursor+1], snap)
	s.cursor++
	s.enforceCapsLocked()
}

// Undo steps the cursor back and returns the snapshot to restore. False at step 0.
func (s *Stack) Undo() (placement.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == 0 {
		return nil, false
	}
	s.cursor--
	return s.entries[s.cursor], true
}

// Redo steps forward again after an Undo, if no Push happened in between.
func (s *Stack) Redo() (placement.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor+1 >= len(s.entries) {
		return nil, false
	}
	s.cursor++
	return s.entries[s.cursor], true
}

// Current returns the snapshot at the cursor.
func (s *Stack) Current() placement.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.cursor]
}

func (s *Stack) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor+1 < len(s.entries)
}

// MaxDepth returns the configured cap (0 means unlimited).
func (s *Stack) MaxDepth() int { return s.cfg.MaxDepth }

func (s *Stack) enforceCapsLocked() {
	if s.cfg.MaxDepth <= 0 {
		return
	}
	// entries holds the base snapshot plus one per step
	if extra := len(s.entries) - (s.cfg.MaxDepth + 1); extra > 0 {
		s.entries = append([]placement.Snapshot{}, s.entries[extra:]...)
		s.cursor -= extra
	}
}
