/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package session

import "formsketch/internal/geom"

// Event names sent to observers.
const (
	// EventOverlay carries an Overlay whenever the selection box changes or disappears.
	EventOverlay = "overlay"
	// EventChanged carries the new placement.Snapshot after a mutation or undo.
	EventChanged = "changed"
	// EventMenu carries a MenuState whenever the suggestion menu opens or closes.
	EventMenu = "menu"
)

// Observer receives session events. Views implement it to redraw; the session
// never calls into view code directly.
type Observer interface {
	Notify(event string, data any)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(event string, data any)

func (f ObserverFunc) Notify(event string, data any) { f(event, data) }

// Recorder is an Observer that keeps every event, for tests and replay traces.
type Recorder struct {
	Events []Event
}

// Event is a single recorded notification.
type Event struct {
	Name string
	Data any
}

func (r *Recorder) Notify(event string, data any) {
	r.Events = append(r.Events, Event{Name: event, Data: data})
}

// Names returns the recorded event names in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Name
	}
	return out
}

// Last returns the most recent event with the given name.
func (r *Recorder) Last(name string) (Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Name == name {
			return r.Events[i], true
		}
	}
	return Event{}, false
}

// Overlay describes the in-progress selection box.
type Overlay struct {
	Active      bool
	Box         geom.Rect
	ContainerID string
}
