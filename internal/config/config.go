/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

type InteractionConfig struct {
	// Mode selects the interaction model for a session: "menu" offers templates after a draw,
	// "classify" commits an element straight from the drawn rectangle.
	Mode    string  `yaml:"mode"`
	MinDrag float32 `yaml:"min_drag"`
}

type HistoryConfig struct {
	MaxDepth int `yaml:"max_depth"` // 0 keeps every snapshot
}

type CanvasConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type ExportConfig struct {
	DPI    int    `yaml:"dpi"`
	Format string `yaml:"format"` // svg | png | pdf | text | json
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int               `yaml:"config_version"`
	General       GeneralConfig     `yaml:"general"`
	Interaction   InteractionConfig `yaml:"interaction"`
	History       HistoryConfig     `yaml:"history"`
	Canvas        CanvasConfig      `yaml:"canvas"`
	Export        ExportConfig      `yaml:"export"`
	Logging       LoggingConfig     `yaml:"logging"`
}

const (
	ModeMenu     = "menu"
	ModeClassify = "classify"
)

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system"},
		Interaction:   InteractionConfig{Mode: ModeMenu, MinDrag: 20},
		History:       HistoryConfig{MaxDepth: 0},
		Canvas:        CanvasConfig{Width: 1100, Height: 700},
		Export:        ExportConfig{DPI: 96, Format: "svg"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// ExportFormats lists the accepted export.format values, aliases included.
var ExportFormats = []string{"svg", "png", "pdf", "text", "txt", "json"}

// Env var names used as overrides.
const (
	EnvConfigPath   = "FSK_CONFIG"
	EnvMode         = "FSK_MODE"
	EnvMinDrag      = "FSK_MIN_DRAG"
	EnvHistoryDepth = "FSK_HISTORY_DEPTH"
	EnvCanvasWidth  = "FSK_CANVAS_WIDTH"
	EnvCanvasHeight = "FSK_CANVAS_HEIGHT"
	EnvExportDPI    = "FSK_EXPORT_DPI"
	EnvLogLevel     = "FSK_LOG_LEVEL"
	EnvLogFormat    = "FSK_LOG_FORMAT"
	EnvLogSource    = "FSK_LOG_SOURCE"
	EnvLogFile      = "FSK_LOG_FILE"
)

// ConfigPath returns the per-user config file path. FSK_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "FormSketch")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "FormSketch")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "formsketch")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "formsketch")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A missing file is not an error; a malformed one is.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		normalize(&cfg)
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, nil
}

// Exists reports whether the user config file is present.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, err
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML, as printed by `formsketch config`.
func Marshal(cfg AppConfig) ([]byte, error) { return yaml.Marshal(cfg) }

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if s := strings.TrimSpace(src.General.Theme); s != "" {
		dst.General.Theme = s
	}
	if s := strings.TrimSpace(src.Interaction.Mode); s != "" {
		dst.Interaction.Mode = strings.ToLower(s)
	}
	if src.Interaction.MinDrag != 0 {
		dst.Interaction.MinDrag = src.Interaction.MinDrag
	}
	// max_depth 0 is meaningful (unlimited), so copy directly
	dst.History.MaxDepth = src.History.MaxDepth
	if src.Canvas.Width != 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height != 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if src.Export.DPI != 0 {
		dst.Export.DPI = src.Export.DPI
	}
	if s := strings.TrimSpace(src.Export.Format); s != "" {
		dst.Export.Format = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvMode)); v != "" {
		cfg.Interaction.Mode = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMinDrag)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Interaction.MinDrag = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryDepth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Canvas.Width = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasHeight)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Canvas.Height = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDPI)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Export.DPI = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// normalize replaces out-of-range values with defaults so callers never see a nonsensical config.
func normalize(cfg *AppConfig) {
	def := Defaults()
	if cfg.Interaction.Mode != ModeMenu && cfg.Interaction.Mode != ModeClassify {
		cfg.Interaction.Mode = def.Interaction.Mode
	}
	if cfg.Interaction.MinDrag <= 0 {
		cfg.Interaction.MinDrag = def.Interaction.MinDrag
	}
	if cfg.History.MaxDepth < 0 {
		cfg.History.MaxDepth = 0
	}
	if cfg.Canvas.Width <= 0 {
		cfg.Canvas.Width = def.Canvas.Width
	}
	if cfg.Canvas.Height <= 0 {
		cfg.Canvas.Height = def.Canvas.Height
	}
	if cfg.Export.DPI <= 0 {
		cfg.Export.DPI = def.Export.DPI
	}
	if !lo.Contains(ExportFormats, cfg.Export.Format) {
		cfg.Export.Format = def.Export.Format
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// OverridableKeys lists the dotted config keys that have an environment override.
var OverridableKeys = []string{
	"interaction.mode", "interaction.min_drag", "history.max_depth", "canvas.width", "canvas.height",
	"export.dpi", "logging.level", "logging.format", "logging.source", "logging.file",
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "interaction.mode":
		env = EnvMode
	case "interaction.min_drag":
		env = EnvMinDrag
	case "history.max_depth":
		env = EnvHistoryDepth
	case "canvas.width":
		env = EnvCanvasWidth
	case "canvas.height":
		env = EnvCanvasHeight
	case "export.dpi":
		env = EnvExportDPI
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
