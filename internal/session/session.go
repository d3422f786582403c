/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package session is the application state of one sketch: it owns the store,
// the history, the selection tracker and the suggestion menu, and exposes every
// mutation as a named command.
//
// A session is not safe for concurrent use. The desktop UI drives it from Fyne
// callbacks, the replay command from a single goroutine.
package session

import (
	"fmt"
	"log/slog"
	"strings"

	"formsketch/internal/config"
	"formsketch/internal/form"
	"formsketch/internal/geom"
	"formsketch/internal/history"
	applog "formsketch/internal/log"
	"formsketch/internal/placement"
	"formsketch/internal/render"
	"formsketch/internal/selection"
	"formsketch/internal/suggest"
)

// Mode is the interaction model, fixed for the lifetime of a session.
type Mode string

const (
	// ModeMenu opens the suggestion menu after a draw and commits on template drop.
	ModeMenu Mode = config.ModeMenu
	// ModeClassify commits an element straight from the drawn box.
	ModeClassify Mode = config.ModeClassify
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMenu:
		return ModeMenu, nil
	case ModeClassify:
		return ModeClassify, nil
	}
	return "", fmt.Errorf("unknown interaction mode %q", s)
}

// State is the position in the draw/menu cycle.
type State int

const (
	Idle State = iota
	Drawing
	MenuOpen
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case MenuOpen:
		return "menu-open"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MenuState is what views need to show the suggestion menu.
type MenuState struct {
	Visible     bool
	Anchor      geom.Pt
	Box         geom.Rect
	ContainerID string
	Templates   []suggest.Template
}

// Options configures a new session.
type Options struct {
	Mode     Mode
	MinDrag  float32
	MaxDepth int
	// IDFunc overrides element id generation.
	IDFunc func() string
	Logger *slog.Logger
}

// OptionsFromConfig maps the interaction and history sections of cfg.
func OptionsFromConfig(cfg config.AppConfig) (Options, error) {
	mode, err := ParseMode(cfg.Interaction.Mode)
	if err != nil {
		return Options{}, err
	}
	return Options{Mode: mode, MinDrag: cfg.Interaction.MinDrag, MaxDepth: cfg.History.MaxDepth}, nil
}

type Session struct {
	mode      Mode
	state     State
	store     *placement.Store
	history   *history.Stack
	tracker   selection.Tracker
	menu      *suggest.Menu
	container string
	created   form.Element
	observers []subscription
	nextSub   int
	log       *slog.Logger
}

func New(opts Options) *Session {
	if opts.Mode == "" {
		opts.Mode = ModeMenu
	}
	storeOpts := []placement.Option{placement.WithMinDrag(opts.MinDrag)}
	if opts.IDFunc != nil {
		storeOpts = append(storeOpts, placement.WithIDFunc(opts.IDFunc))
	}
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("session")
	}
	s := &Session{
		mode:    opts.Mode,
		store:   placement.New(storeOpts...),
		history: history.NewStack(history.Config{MaxDepth: opts.MaxDepth}),
		log:     l.With(slog.String("mode", string(opts.Mode))),
	}
	s.menu = suggest.NewMenu(s.store.MinDrag())
	s.tracker.OnOverlay = func(box geom.Rect) {
		s.emit(EventOverlay, Overlay{Active: true, Box: box, ContainerID: s.tracker.ContainerID()})
	}
	return s
}

// Subscribe registers o and returns a function that removes it.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.observers = append(s.observers, subscription{id: id, o: o})
	return func() {
		for i, cur := range s.observers {
			if cur.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

type subscription struct {
	id int
	o  Observer
}

func (s *Session) emit(event string, data any) {
	for _, sub := range s.observers {
		sub.o.Notify(event, data)
	}
}

// PointerDown starts a draw at pos, local to the surface containerID (empty for the canvas).
// An open menu closes without touching the sketch.
func (s *Session) PointerDown(pos geom.Pt, containerID string) {
	if s.state == MenuOpen {
		s.closeMenu()
	}
	s.tracker.Begin(pos, containerID)
	s.state = Drawing
	s.log.Debug("pointer down", "x", pos.X, "y", pos.Y, "container", containerID)
	s.emit(EventOverlay, Overlay{Active: true, Box: s.tracker.Box(), ContainerID: containerID})
}

// PointerMove resizes the selection box while drawing.
func (s *Session) PointerMove(pos geom.Pt) {
	if s.state != Drawing {
		return
	}
	s.tracker.Update(pos)
}

// PointerUp ends a draw. In classify mode it commits and reports whether an element was added;
// in menu mode it opens the menu (no mutation, so always false).
func (s *Session) PointerUp() bool {
	box, container, ok := s.tracker.End()
	if !ok {
		return false
	}
	s.state = Idle
	s.emit(EventOverlay, Overlay{})
	l := applog.WithOperation(s.log, "pointer-up")

	if s.mode == ModeClassify {
		e, ok := s.store.Commit(box, container)
		if !ok {
			l.Debug("draw rejected", "w", box.W, "h", box.H, "container", container)
			return false
		}
		l.Debug("committed", "id", e.Info().ID, "kind", e.Kind())
		s.created = e
		s.changed()
		return true
	}

	if s.menu.Open(suggest.AnchorFor(box), box) {
		s.container = container
		s.state = MenuOpen
		l.Debug("menu opened", "h", box.H, "container", container)
		s.emit(EventMenu, s.Menu())
	}
	return false
}

// PointerLeave behaves like PointerUp: leaving the canvas finishes the draw.
func (s *Session) PointerLeave() bool { return s.PointerUp() }

// DropTemplate spawns kind at pos inside containerID. A successful drop closes the menu.
func (s *Session) DropTemplate(kind form.Kind, pos geom.Pt, containerID string) bool {
	e, ok := s.store.Spawn(kind, pos, containerID)
	if !ok {
		s.log.Debug("drop rejected", "kind", kind, "container", containerID)
		return false
	}
	s.log.Debug("dropped", "id", e.Info().ID, "kind", kind, "container", containerID)
	if s.state == MenuOpen {
		s.closeMenu()
	}
	s.created = e
	s.changed()
	return true
}

// Relocate moves element id to (x, y) in its container's space.
func (s *Session) Relocate(id string, x, y float32) bool {
	if !s.store.Relocate(id, x, y) {
		return false
	}
	s.log.Debug("relocated", "id", id, "x", x, "y", y)
	s.changed()
	return true
}

// Undo restores the previous snapshot. False at the bottom of history.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.store.Restore(snap)
	s.log.Debug("undo", "step", s.history.Step(), "elements", s.store.Len())
	s.emit(EventChanged, s.store.Elements())
	return true
}

// Redo re-applies a snapshot undone earlier, if nothing was committed since.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.store.Restore(snap)
	s.log.Debug("redo", "step", s.history.Step(), "elements", s.store.Len())
	s.emit(EventChanged, s.store.Elements())
	return true
}

func (s *Session) changed() {
	snap := s.store.Elements()
	s.history.Push(snap)
	s.emit(EventChanged, snap)
}

func (s *Session) closeMenu() {
	s.menu.Close()
	s.container = ""
	s.state = Idle
	s.emit(EventMenu, s.Menu())
}

// CloseMenu dismisses the menu without changing the sketch.
func (s *Session) CloseMenu() {
	if s.state == MenuOpen {
		s.closeMenu()
	}
}

func (s *Session) Mode() Mode   { return s.mode }
func (s *Session) State() State { return s.state }

// Elements returns the current snapshot.
func (s *Session) Elements() placement.Snapshot { return s.store.Elements() }

func (s *Session) Find(id string) (form.Element, bool) { return s.store.Find(id) }

// Len counts every element including nested ones.
func (s *Session) Len() int { return s.store.Len() }

// Tree renders the current snapshot.
func (s *Session) Tree() *render.Tree { return render.Build(s.store.Elements()) }

func (s *Session) Overlay() Overlay {
	if !s.tracker.Active() {
		return Overlay{}
	}
	return Overlay{Active: true, Box: s.tracker.Box(), ContainerID: s.tracker.ContainerID()}
}

func (s *Session) Menu() MenuState {
	if !s.menu.Visible() {
		return MenuState{}
	}
	return MenuState{
		Visible:     true,
		Anchor:      s.menu.Anchor(),
		Box:         s.menu.Box(),
		ContainerID: s.container,
		Templates:   s.menu.Templates(),
	}
}

// LastCreated returns the element added by the most recent commit or drop.
// Undo does not reset it.
func (s *Session) LastCreated() (form.Element, bool) { return s.created, s.created != nil }

// HistoryStep is the cursor position in the undo trail.
func (s *Session) HistoryStep() int { return s.history.Step() }

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
