package clipboardx

import (
	"errors"
	"testing"
)

func stubSystem(t *testing.T, write func(string) error, read func() (string, error)) {
	t.Helper()
	prevWrite, prevRead := systemWrite, systemRead
	systemWrite, systemRead = write, read
	t.Cleanup(func() {
		systemWrite, systemRead = prevWrite, prevRead
		internal = ""
	})
}

func TestReadFallsBackToInternal(t *testing.T) {
	stubSystem(t,
		func(string) error { return errors.New("no display") },
		func() (string, error) { return "", errors.New("no display") },
	)

	err := Write("copied line")
	if err == nil {
		t.Fatalf("expected the system error to be reported")
	}
	if got := Read(); got != "copied line" {
		t.Fatalf("expected internal clipboard text, got %q", got)
	}
}

func TestReadPrefersSystem(t *testing.T) {
	var stored string
	stubSystem(t,
		func(text string) error { stored = text; return nil },
		func() (string, error) { return "from system", nil },
	)

	if err := Write("local"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if stored != "local" {
		t.Fatalf("expected system clipboard to receive text, got %q", stored)
	}
	if got := Read(); got != "from system" {
		t.Fatalf("expected system clipboard text, got %q", got)
	}
}
