package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EditorConfig holds the indentation properties of the .editorconfig
// sections that match a file.
type EditorConfig struct {
	IndentStyle string // "tab" or "space"
	IndentSize  int    // 0 means unset
	TabWidth    int    // 0 means unset
}

// FindEditorConfig walks from the file's directory upward collecting
// .editorconfig files until one declares root = true. Closer files win.
// Returns nil when nothing applies.
func FindEditorConfig(filePath string) *EditorConfig {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}
	fileName := filepath.Base(absPath)

	var chain []map[string]string
	for dir := filepath.Dir(absPath); ; {
		props, isRoot := parseEditorConfig(filepath.Join(dir, ".editorconfig"), fileName)
		if props != nil {
			chain = append(chain, props)
		}
		if isRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	merged := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i] {
			merged[k] = v
		}
	}
	return editorConfigFrom(merged)
}

// parseEditorConfig returns the properties of the sections in path that match
// fileName, and whether the file is marked as root.
func parseEditorConfig(path, fileName string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	props := make(map[string]string)
	isRoot := false
	inPreamble := true
	matching := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			inPreamble = false
			matching = matchPattern(line[1:len(line)-1], fileName)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch {
		case inPreamble && key == "root":
			isRoot = value == "true"
		case matching:
			props[key] = value
		}
	}

	if len(props) == 0 {
		return nil, isRoot
	}
	return props, isRoot
}

// matchPattern matches fileName against a section glob, expanding one or
// more {a,b} alternatives.
func matchPattern(pattern, fileName string) bool {
	for _, p := range expandBraces(pattern) {
		if matched, _ := filepath.Match(p, fileName); matched {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	closeIdx := strings.IndexByte(pattern[open:], '}')
	if closeIdx < 0 {
		return []string{pattern}
	}
	closeIdx += open

	prefix, suffix := pattern[:open], pattern[closeIdx+1:]
	var out []string
	for _, alt := range strings.Split(pattern[open+1:closeIdx], ",") {
		out = append(out, expandBraces(prefix+alt+suffix)...)
	}
	return out
}

func editorConfigFrom(m map[string]string) *EditorConfig {
	ec := &EditorConfig{IndentStyle: m["indent_style"]}
	if n, err := strconv.Atoi(m["indent_size"]); err == nil && n > 0 {
		ec.IndentSize = n
	}
	if n, err := strconv.Atoi(m["tab_width"]); err == nil && n > 0 {
		ec.TabWidth = n
	}
	if ec.IndentStyle == "" && ec.IndentSize == 0 && ec.TabWidth == 0 {
		return nil
	}
	return ec
}
