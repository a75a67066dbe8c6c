package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"termedit/buffer"
	"termedit/config"
)

// FileState is the cursor and scroll position remembered for one file.
type FileState struct {
	Path      string `json:"path"`
	Line      int    `json:"cursor_line"`
	Col       int    `json:"cursor_col"`
	ScrollRow int    `json:"scroll_row"`
	ScrollCol int    `json:"scroll_col"`
}

func sessionDir() string {
	dir := config.DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "sessions")
}

func sessionPath(file string) string {
	dir := sessionDir()
	if dir == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(file))
	return filepath.Join(dir, fmt.Sprintf("%x.json", hash[:8]))
}

// SaveSession records where the view is in file so the next run can resume
// there.
func SaveSession(file string, v *View) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	path := sessionPath(abs)
	if path == "" {
		return nil
	}
	loc, scroll := v.Location(), v.ScrollOffset()
	state := FileState{
		Path:      abs,
		Line:      loc.LineIndex,
		Col:       loc.GraphemeIndex,
		ScrollRow: scroll.Row,
		ScrollCol: scroll.Col,
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RestoreSession moves v to the position saved for file. It reports false
// when nothing usable was saved.
func RestoreSession(file string, v *View) bool {
	abs, err := filepath.Abs(file)
	if err != nil {
		return false
	}
	path := sessionPath(abs)
	if path == "" {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var state FileState
	if err := json.Unmarshal(data, &state); err != nil {
		return false
	}
	if state.Path != abs {
		return false
	}
	v.Restore(
		buffer.Location{LineIndex: state.Line, GraphemeIndex: state.Col},
		Position{Row: state.ScrollRow, Col: state.ScrollCol},
	)
	return true
}
