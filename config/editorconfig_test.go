package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEditorConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestFindEditorConfigMergesCloserFiles(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	writeEditorConfig(t, root, "root = true\n\n[*]\nindent_style = space\nindent_size = 4\n")
	writeEditorConfig(t, sub, "[*.{go,mod}]\nindent_style = tab\n")

	ec := FindEditorConfig(filepath.Join(sub, "main.go"))
	if ec == nil {
		t.Fatalf("expected settings")
	}
	if ec.IndentStyle != "tab" || ec.IndentSize != 4 {
		t.Fatalf("unexpected settings %+v", ec)
	}

	ec = FindEditorConfig(filepath.Join(sub, "notes.txt"))
	if ec == nil || ec.IndentStyle != "space" {
		t.Fatalf("expected root settings for txt, got %+v", ec)
	}
}

func TestFindEditorConfigNoMatch(t *testing.T) {
	root := t.TempDir()
	writeEditorConfig(t, root, "root = true\n[*.py]\nindent_size = 4\n")
	if ec := FindEditorConfig(filepath.Join(root, "a.txt")); ec != nil {
		t.Fatalf("expected nil, got %+v", ec)
	}
}

func TestIndentForUsesEditorConfig(t *testing.T) {
	root := t.TempDir()
	writeEditorConfig(t, root, "root = true\n[Makefile]\nindent_style = tab\ntab_width = 8\n")

	cfg := Default()
	size, expand := cfg.IndentFor(filepath.Join(root, "Makefile"))
	if size != 8 || expand {
		t.Fatalf("expected 8/tabs, got %d/%v", size, expand)
	}
	size, expand = cfg.IndentFor(filepath.Join(root, "README"))
	if size != cfg.TabSize || expand != cfg.ExpandTabs {
		t.Fatalf("expected defaults, got %d/%v", size, expand)
	}
	size, expand = cfg.IndentFor("")
	if size != cfg.TabSize || expand != cfg.ExpandTabs {
		t.Fatalf("expected defaults for unnamed buffer, got %d/%v", size, expand)
	}
}

func TestExpandBraces(t *testing.T) {
	got := expandBraces("*.{js,ts}")
	if len(got) != 2 || got[0] != "*.js" || got[1] != "*.ts" {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := expandBraces("*.go"); len(got) != 1 || got[0] != "*.go" {
		t.Fatalf("unexpected expansion %q", got)
	}
}
