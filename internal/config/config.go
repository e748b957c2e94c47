// Package config loads and resolves this application's JSON configuration
// using a default/merge/normalize pipeline with JSONC-comment tolerance,
// over the fields this application recognizes.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds every recognized setting, with its default shown
// in Default().
type Config struct {
	Platform          string `json:"platform"`
	ANSIColors        bool   `json:"ansi_colors"`
	UnicodeBox        bool   `json:"unicode_box"`
	Theme             string `json:"theme"`
	AutoMultiline     bool   `json:"auto_multiline"`
	CompressThreshold int    `json:"compress_threshold"`
	HistoryMaxEntries int    `json:"history_max_entries"`
	UseFallbackInput  bool   `json:"use_fallback_input"`

	// StorageBaseDir is not one of the documented user-facing keys; it backs
	// internal/transcript's supplemental session log and internal/history's
	// default file location.
	StorageBaseDir string `json:"storage_base_dir"`

	// unknown preserves any keys this schema doesn't recognize, so a
	// load -> Save round trip never drops operator-added fields.
	unknown map[string]json.RawMessage
}

// fileOverlay is the map-shaped decode target that makes "unknown keys
// survive a round trip" possible: every recognized field is decoded twice
// (once typed, once as part of the raw map), and Save re-serializes the
// raw map with the typed fields re-injected.
type fileOverlay map[string]json.RawMessage

// Default returns the documented defaults.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Platform:          autodetectPlatform(),
		ANSIColors:        true,
		UnicodeBox:        true,
		Theme:             "mystic_purple",
		AutoMultiline:     true,
		CompressThreshold: 10,
		HistoryMaxEntries: 1000,
		UseFallbackInput:  false,
		StorageBaseDir:    filepath.Join(home, ".turnline"),
	}
}

func autodetectPlatform() string {
	switch {
	case strings.Contains(strings.ToLower(os.Getenv("OS")), "windows"):
		return "windows"
	default:
		return "unix"
	}
}

// Load resolves a config path (explicit path, then TURNLINE_CONFIG_PATH,
// then ./.turnline/config.json, then ~/.turnline/config.json), reads and
// merges it over Default(), and returns the result. A missing file or
// invalid JSON is treated as "use defaults" — never propagated, matching
// the documented config contract.
func Load(explicitPath string) Config {
	cfg := Default()
	path := resolvePath(explicitPath)
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	cleaned := stripJSONComments(data)

	var overlay fileOverlay
	if err := json.Unmarshal(cleaned, &overlay); err != nil {
		return cfg
	}
	cfg.unknown = overlay

	var typed Config
	if err := json.Unmarshal(cleaned, &typed); err != nil {
		return cfg
	}
	applyOverlay(&cfg, &typed, overlay)
	return cfg
}

func resolvePath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	if v := strings.TrimSpace(os.Getenv("TURNLINE_CONFIG_PATH")); v != "" {
		return v
	}
	if _, err := os.Stat(".turnline/config.json"); err == nil {
		return ".turnline/config.json"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(home, ".turnline", "config.json")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// applyOverlay copies each key present in the decoded overlay from typed
// onto cfg, leaving defaults in place for any key the file omitted.
func applyOverlay(cfg *Config, typed *Config, overlay fileOverlay) {
	if _, ok := overlay["platform"]; ok {
		cfg.Platform = typed.Platform
	}
	if _, ok := overlay["ansi_colors"]; ok {
		cfg.ANSIColors = typed.ANSIColors
	}
	if _, ok := overlay["unicode_box"]; ok {
		cfg.UnicodeBox = typed.UnicodeBox
	}
	if _, ok := overlay["theme"]; ok {
		cfg.Theme = typed.Theme
	}
	if _, ok := overlay["auto_multiline"]; ok {
		cfg.AutoMultiline = typed.AutoMultiline
	}
	if _, ok := overlay["compress_threshold"]; ok {
		cfg.CompressThreshold = typed.CompressThreshold
	}
	if _, ok := overlay["history_max_entries"]; ok {
		cfg.HistoryMaxEntries = typed.HistoryMaxEntries
	}
	if _, ok := overlay["use_fallback_input"]; ok {
		cfg.UseFallbackInput = typed.UseFallbackInput
	}
	if _, ok := overlay["storage_base_dir"]; ok {
		cfg.StorageBaseDir = typed.StorageBaseDir
	}
}

// Save writes cfg to path as a full-file overwrite, preserving any unknown
// keys that were present when it was loaded.
func Save(path string, cfg Config) error {
	out := make(map[string]json.RawMessage, len(cfg.unknown)+9)
	for k, v := range cfg.unknown {
		out[k] = v
	}
	set := func(key string, value interface{}) {
		raw, err := json.Marshal(value)
		if err != nil {
			return
		}
		out[key] = raw
	}
	set("platform", cfg.Platform)
	set("ansi_colors", cfg.ANSIColors)
	set("unicode_box", cfg.UnicodeBox)
	set("theme", cfg.Theme)
	set("auto_multiline", cfg.AutoMultiline)
	set("compress_threshold", cfg.CompressThreshold)
	set("history_max_entries", cfg.HistoryMaxEntries)
	set("use_fallback_input", cfg.UseFallbackInput)
	set("storage_base_dir", cfg.StorageBaseDir)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// stripJSONComments removes // line comments and /* */ block comments
// outside of string literals, so operators can annotate their config file.
func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)
	state := stateNormal
	escaped := false
	var out bytes.Buffer

	for i := 0; i < len(data); i++ {
		c := data[i]
		var next byte
		if i+1 < len(data) {
			next = data[i+1]
		}
		switch state {
		case stateNormal:
			switch {
			case c == '"':
				state = stateString
				out.WriteByte(c)
			case c == '/' && next == '/':
				state = stateLineComment
				i++
			case c == '/' && next == '*':
				state = stateBlockComment
				i++
			default:
				out.WriteByte(c)
			}
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}
	return out.Bytes()
}
