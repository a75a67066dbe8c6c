package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

const appName = "termedit"

type Config struct {
	TabSize        int    `json:"tab_size"`
	ExpandTabs     bool   `json:"expand_tabs"`
	Theme          string `json:"theme"`
	WatchFile      bool   `json:"watch_file"`
	RestoreSession bool   `json:"restore_session"`
	LogFile        string `json:"log_file"`
	LogLevel       string `json:"log_level"`
}

type ColorScheme struct {
	Name        string
	Background  tcell.Color
	Foreground  tcell.Color
	EmptyRow    tcell.Color // "~" marker below the end of the document
	Welcome     tcell.Color
	StatusBarBg tcell.Color
	StatusBarFg tcell.Color
	StatusError tcell.Color
}

// Style returns the default text style of the scheme.
func (c *ColorScheme) Style() tcell.Style {
	return tcell.StyleDefault.Background(c.Background).Foreground(c.Foreground)
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:        "Dark",
		Background:  tcell.ColorBlack,
		Foreground:  tcell.ColorWhite,
		EmptyRow:    tcell.ColorGreen,
		Welcome:     tcell.ColorGreen,
		StatusBarBg: tcell.ColorDarkBlue,
		StatusBarFg: tcell.ColorWhite,
		StatusError: tcell.ColorRed,
	},
	"light": {
		Name:        "Light",
		Background:  tcell.ColorWhite,
		Foreground:  tcell.ColorBlack,
		EmptyRow:    tcell.ColorDarkGreen,
		Welcome:     tcell.ColorDarkGreen,
		StatusBarBg: tcell.ColorLightBlue,
		StatusBarFg: tcell.ColorBlack,
		StatusError: tcell.ColorDarkRed,
	},
	"monokai": {
		Name:        "Monokai",
		Background:  tcell.NewRGBColor(39, 40, 34),
		Foreground:  tcell.NewRGBColor(248, 248, 242),
		EmptyRow:    tcell.NewRGBColor(166, 226, 46),
		Welcome:     tcell.NewRGBColor(166, 226, 46),
		StatusBarBg: tcell.NewRGBColor(73, 72, 62),
		StatusBarFg: tcell.NewRGBColor(248, 248, 242),
		StatusError: tcell.NewRGBColor(249, 38, 114),
	},
}

func Default() *Config {
	return &Config{
		TabSize:        4,
		ExpandTabs:     true,
		Theme:          "monokai",
		WatchFile:      true,
		RestoreSession: true,
		LogLevel:       "info",
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "settings.json")
}

// DataDir is where per-user state such as sessions is kept.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}

// Load reads the settings file over the defaults. A missing file is not an error.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.TabSize <= 0 {
		cfg.TabSize = Default().TabSize
	}
	return cfg, nil
}

// IndentFor returns the tab handling for path: the configured defaults,
// overridden by any matching .editorconfig section.
func (c *Config) IndentFor(path string) (tabSize int, expandTabs bool) {
	tabSize, expandTabs = c.TabSize, c.ExpandTabs
	if path == "" {
		return tabSize, expandTabs
	}
	ec := FindEditorConfig(path)
	if ec == nil {
		return tabSize, expandTabs
	}
	switch ec.IndentStyle {
	case "tab":
		expandTabs = false
	case "space":
		expandTabs = true
	}
	switch {
	case ec.IndentSize > 0:
		tabSize = ec.IndentSize
	case ec.TabWidth > 0:
		tabSize = ec.TabWidth
	}
	return tabSize, expandTabs
}
