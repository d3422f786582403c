//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"formsketch/internal/config"
	"formsketch/internal/crash"
	"formsketch/internal/export"
	applog "formsketch/internal/log"
	"formsketch/internal/session"
	"formsketch/internal/version"
)

// Run starts the Fyne desktop UI with an empty sketch.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("mode", cfg.Interaction.Mode))

	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	expOpts, err := export.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	sess := session.New(opts)
	crash.Register(sess)
	defer crash.Recover()

	fyneApp := app.NewWithID("formsketch")
	applyTheme(fyneApp, cfg.General.Theme)
	w := fyneApp.NewWindow("Form Sketch " + version.Version)
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1200), 800)
	winH := max(prefs.IntWithFallback("window.height", 800), 600)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	sketch := NewSketchCanvas(sess, cfg.Canvas.Width, cfg.Canvas.Height)
	menuLayer := container.NewWithoutLayout()

	modeLabel := widget.NewLabelWithStyle("Mode: "+string(sess.Mode()), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	countLabel := widget.NewLabel("")
	updateCount := func() { countLabel.SetText(fmt.Sprintf("%d element(s)", sess.Len())) }
	updateCount()

	unsubscribe := sess.Subscribe(session.ObserverFunc(func(event string, data any) {
		switch event {
		case session.EventChanged:
			sketch.Sync()
			updateCount()
			if e, ok := sess.LastCreated(); ok {
				status.SetText(fmt.Sprintf("%s %s", e.Kind().Label(), shortID(e.Info().ID)))
			}
		case session.EventOverlay:
			sketch.Refresh()
		case session.EventMenu:
			if m, ok := data.(session.MenuState); ok {
				showMenu(menuLayer, m, sketch)
			}
		}
	}))
	defer unsubscribe()

	undo := func() {
		if !sess.Undo() {
			status.SetText("Nothing to undo")
			return
		}
		status.SetText("Undone")
	}

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), undo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { showExportDialog(w, sess, expOpts, status, l) }),
	)
	top := container.NewHBox(toolbar, modeLabel, layout.NewSpacer(), countLabel)
	body := container.NewScroll(container.NewStack(sketch, menuLayer))
	w.SetContent(container.NewBorder(top, status, nil, nil, body))

	removeShortcuts := installUndoShortcuts(w.Canvas(), undo)
	w.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		if k.Name == fyne.KeyEscape {
			sess.CloseMenu()
		}
	})

	// Persist preferences on close
	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		removeShortcuts()
		w.Close()
	})

	w.ShowAndRun()
	l.Info("UI closed", slog.Int("elements", sess.Len()))
	return nil
}

// undoShortcuts are the platform undo chords: Ctrl+Z everywhere and Cmd+Z on macOS.
var undoShortcuts = []*desktop.CustomShortcut{
	{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl},
	{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierSuper},
}

// installUndoShortcuts binds undo on cv and returns a func removing the bindings again.
func installUndoShortcuts(cv fyne.Canvas, undo func()) (remove func()) {
	for _, sc := range undoShortcuts {
		cv.AddShortcut(sc, func(fyne.Shortcut) { undo() })
	}
	return func() {
		for _, sc := range undoShortcuts {
			cv.RemoveShortcut(sc)
		}
	}
}

var exportFilters = []string{".svg", ".png", ".pdf"}

func showExportDialog(w fyne.Window, sess *session.Session, opts export.Options, status *widget.Label, l *slog.Logger) {
	if sess.Len() == 0 {
		dialog.ShowInformation("Export", "Nothing to export yet.", w)
		return
	}
	def := opts.Format
	if def != export.FormatSVG && def != export.FormatPNG && def != export.FormatPDF {
		def = export.FormatSVG
	}
	save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		outPath := uc.URI().Path()
		_ = uc.Close()
		exp := opts
		exp.Format = def
		if f, ok := export.FormatForPath(outPath); ok {
			exp.Format = f
		} else {
			outPath += def.Ext()
		}
		exp.Title = "Form Sketch"
		if err := export.WriteFile(outPath, sess.Elements(), exp); err != nil {
			l.Error("export failed", slog.String("path", outPath), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		l.Info("exported", slog.String("path", outPath), slog.String("format", string(exp.Format)))
		status.SetText("Exported to " + outPath)
	}, w)
	save.SetFileName("sketch" + def.Ext())
	save.SetFilter(fstorage.NewExtensionFileFilter(exportFilters))
	save.Show()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// variantTheme pins the default theme to a light or dark variant.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t variantTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

func applyTheme(a fyne.App, name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantLight})
	case "dark":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark})
	}
}
