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
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"formsketch/internal/config"
	"formsketch/internal/crash"
	applog "formsketch/internal/log"
	"formsketch/internal/script"
	"formsketch/internal/ui"
	"formsketch/internal/version"
)

func main() {
	defer crash.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs after the persistent pre-run.
type app struct {
	cfg      config.AppConfig
	logLevel string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "formsketch",
		Short: "Sketch form layouts by drawing rectangles",
		Long: `Form Sketch turns rough rectangles into form elements. Draw on the canvas and
the tool either classifies the box directly or offers matching templates to drag
into place. Gesture scripts replay the same interaction headlessly.`,
		Example: `  formsketch ui
  formsketch replay login.yaml --format png --out login.png
  formsketch replay login.yaml --watch --out login.svg
  formsketch validate login.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			opts := logOptions(cfg)
			opts.Console = cmd.ErrOrStderr()
			applog.Init(opts)
			if a.logLevel != "" {
				applog.SetLevel(a.logLevel)
			}
			applog.WithComponent("cli").Debug("start", slog.String("cmd", cmd.CommandPath()))
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level (debug|info|warn|error)")

	rootCmd.AddCommand(newUICommand(a))
	rootCmd.AddCommand(newReplayCommand(a))
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newConfigCommand(a))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// logOptions maps the logging section; config.Load has already applied FSK_LOG_* overrides.
func logOptions(cfg config.AppConfig) applog.Options {
	return applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
}

func newUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Launch the desktop UI (build with -tags fyne)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return ui.Run(a.cfg)
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script>",
		Short: "Check a gesture script against the script schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := script.Load(args[0])
			if err != nil {
				return err
			}
			mode := sc.Mode
			if mode == "" {
				mode = "default"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d steps, mode %s)\n", args[0], len(sc.Steps), mode)
			return nil
		},
	}
}

func newConfigCommand(a *app) *cobra.Command {
	var pathOnly, initFile, force bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config prints the effective configuration as YAML. Keys set through FSK_*
environment variables are listed after it. With --init the defaults are written
to the config file so they can be edited.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case pathOnly:
				fmt.Fprintln(out, path)
				return nil
			case initFile:
				return initConfig(out, path, force)
			}
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "# %s\n%s", path, data)
			var overridden []string
			for _, key := range config.OverridableKeys {
				if env, ok := config.EnvOverrideFor(key); ok {
					overridden = append(overridden, fmt.Sprintf("#   %s <- %s", key, env))
				}
			}
			if len(overridden) > 0 {
				fmt.Fprintln(out, "# overridden by environment:")
				fmt.Fprintln(out, strings.Join(overridden, "\n"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pathOnly, "path", false, "print only the config file path")
	cmd.Flags().BoolVar(&initFile, "init", false, "write the default configuration to the config file")
	cmd.Flags().BoolVar(&force, "force", false, "with --init, overwrite an existing config file")
	return cmd
}

func initConfig(out io.Writer, path string, force bool) error {
	exists, err := config.Exists()
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(config.Defaults()); err != nil {
		return err
	}
	applog.WithComponent("cli").Info("config written", slog.String("path", path))
	fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Form Sketch")
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
}
