package clipboardx

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// System clipboard access; swapped out in tests.
var (
	systemWrite = clipboard.WriteAll
	systemRead  = clipboard.ReadAll
)

var (
	mu       sync.Mutex
	internal string
)

// Write stores text in the process clipboard and, when available, in the
// system clipboard. The returned error only reports the system side; the
// text is always readable back through Read.
func Write(text string) error {
	mu.Lock()
	internal = text
	mu.Unlock()

	if err := systemWrite(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// Read returns the system clipboard contents, falling back to the last text
// passed to Write.
func Read() string {
	if text, err := systemRead(); err == nil && text != "" {
		return text
	}
	mu.Lock()
	defer mu.Unlock()
	return internal
}
