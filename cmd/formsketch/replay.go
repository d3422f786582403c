/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"formsketch/internal/config"
	"formsketch/internal/crash"
	"formsketch/internal/export"
	applog "formsketch/internal/log"
	"formsketch/internal/script"
	"formsketch/internal/session"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 300 * time.Millisecond

type replayFlags struct {
	format  string
	out     string
	preset  string
	dpi     int
	noColor bool
	watch   bool
}

func newReplayCommand(a *app) *cobra.Command {
	var f replayFlags
	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a gesture script and render the resulting sketch",
		Long: `Replay runs the steps of a gesture script against a fresh session and writes
the final sketch. Without --out the result goes to stdout. The format defaults to
the extension of --out, then to export.format from the configuration.`,
		Example: `  formsketch replay login.yaml
  formsketch replay login.yaml --format text
  formsketch replay login.yaml --out build/login.pdf --preset print`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			run := func(ctx context.Context) error {
				return replayOnce(ctx, a.cfg, path, f, cmd.OutOrStdout())
			}
			if !f.watch {
				return run(cmd.Context())
			}
			return watchScript(cmd.Context(), path, run, applog.WithComponent("watch"))
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: svg|png|pdf|text|json")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "export preset: web|print")
	cmd.Flags().IntVar(&f.dpi, "dpi", 0, "override the export DPI")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "plain text outline without styling")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "re-render whenever the script changes")
	return cmd
}

// exportOptions resolves flags over the configuration and the script's canvas.
// A bad export.format only matters when neither --format nor --out picks one.
func exportOptions(cfg config.AppConfig, sc *script.Script, f replayFlags) (export.Options, error) {
	opts, cfgErr := export.OptionsFromConfig(cfg)
	var err error
	switch {
	case f.format != "":
		if opts.Format, err = export.ParseFormat(f.format); err != nil {
			return opts, err
		}
		cfgErr = nil
	case f.out != "" && f.out != "-":
		if ext, ok := export.FormatForPath(f.out); ok {
			opts.Format = ext
			cfgErr = nil
		}
	}
	if cfgErr != nil {
		return opts, cfgErr
	}
	switch export.PresetName(f.preset) {
	case "":
	case export.PresetWeb, export.PresetPrint:
		opts.Preset = export.PresetName(f.preset)
		opts.DPI = 0
	default:
		return opts, fmt.Errorf("unknown preset: %q", f.preset)
	}
	if f.dpi > 0 {
		opts.DPI = f.dpi
	}
	opts.NoColor = f.noColor
	if sc.Canvas != nil {
		opts.Width, opts.Height = sc.Canvas.Width, sc.Canvas.Height
	}
	return opts, nil
}

func replayOnce(ctx context.Context, cfg config.AppConfig, path string, f replayFlags, stdout io.Writer) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "replay")
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	base, err := session.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	s, err := script.NewSession(sc, base)
	if err != nil {
		return err
	}
	crash.Register(s)
	res, err := script.Replay(ctx, sc, s)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	opts, err := exportOptions(cfg, sc, f)
	if err != nil {
		return err
	}
	opts.Title = filepath.Base(path)
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.out == "" || f.out == "-" {
		err = export.Write(stdout, res.Elements, opts)
	} else {
		err = export.WriteFile(f.out, res.Elements, opts)
	}
	if err != nil {
		return err
	}
	l.Info("replayed",
		slog.String("script", path),
		slog.Int("steps", res.Steps),
		slog.Int("changed", res.Changed),
		slog.Int("elements", s.Len()),
		slog.String("format", string(opts.Format)),
	)
	return nil
}

// watchScript runs once, then again after every write to path, until ctx is done.
// Each run gets its own context; a newer change cancels a run still in flight
// and waits for it to return.
func watchScript(ctx context.Context, path string, run func(context.Context) error, l *slog.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	// Watch the directory: editors often replace the file instead of writing it.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	var (
		wg       sync.WaitGroup
		cancelFn context.CancelFunc
		timer    *time.Timer
	)
	trigger := make(chan struct{}, 1)
	// At most one run is in flight: the previous one is cancelled and drained
	// before the next starts, so two runs never write the same output.
	start := func() {
		if cancelFn != nil {
			cancelFn()
			wg.Wait()
		}
		runCtx, cancel := context.WithCancel(ctx)
		cancelFn = cancel
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer crash.Recover()
			if err := run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				l.Error("replay failed", slog.String("script", abs), slog.Any("err", err))
			}
		}()
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if cancelFn != nil {
			cancelFn()
		}
		wg.Wait()
	}()

	l.Info("watching", slog.String("script", abs))
	start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		case <-trigger:
			l.Debug("script changed", slog.String("script", abs))
			start()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Error("watch error", slog.Any("err", err))
		}
	}
}
