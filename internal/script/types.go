/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package script loads gesture scripts and replays them against a session.
//
// A script is a YAML (or JSON) document listing pointer gestures, template
// drops, relocations and undos. It is schema-checked before use, so replay
// only has to deal with references between steps.
package script

import "fmt"

// Op names a step.
type Op string

const (
	OpDown     Op = "down"
	OpMove     Op = "move"
	OpUp       Op = "up"
	OpLeave    Op = "leave"
	OpDrop     Op = "drop"
	OpRelocate Op = "relocate"
	OpUndo     Op = "undo"
	OpRedo     Op = "redo"
)

// Script is a parsed gesture script.
type Script struct {
	Mode   string  `yaml:"mode,omitempty" json:"mode,omitempty"`
	Canvas *Canvas `yaml:"canvas,omitempty" json:"canvas,omitempty"`
	Steps  []Step  `yaml:"steps" json:"steps"`
}

type Canvas struct {
	Width  float32 `yaml:"width" json:"width"`
	Height float32 `yaml:"height" json:"height"`
}

// Step is one gesture.
// At is [x, y]; In names the card a gesture or drop targets; Target names the
// element a relocate moves; Label names the element a step creates so later
// steps can refer to it.
type Step struct {
	Op     Op        `yaml:"op" json:"op"`
	At     []float32 `yaml:"at,omitempty" json:"at,omitempty"`
	In     string    `yaml:"in,omitempty" json:"in,omitempty"`
	Kind   string    `yaml:"kind,omitempty" json:"kind,omitempty"`
	Target string    `yaml:"target,omitempty" json:"target,omitempty"`
	Label  string    `yaml:"label,omitempty" json:"label,omitempty"`
}

// Issue is a single schema violation.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string { return fmt.Sprintf("%s: %s", i.Field, i.Message) }

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("script is invalid (%d issue(s))", len(e.Issues))
	for _, i := range e.Issues {
		msg += "\n  - " + i.String()
	}
	return msg
}

// StepError reports a step that could not be replayed.
type StepError struct {
	Index   int // 0-based
	Op      Op
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Index+1, e.Op, e.Message)
}
