//go:build unix

package term

import (
	"os"
	"testing"
	"time"
)

func newPipeConsole(t *testing.T) (*Console, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe() failed: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return NewConsole(r, w), w
}

func TestConsoleReadKeyKeepsBufferedKeys(t *testing.T) {
	c, w := newPipeConsole(t)

	if _, err := w.Write([]byte("d\x1b[A\x1b[5~\x1bq")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	want := []Key{RuneKey('d'), {Type: KeyUp}, {Type: KeyEscape}, RuneKey('q')}
	for i, expected := range want {
		k, err := c.ReadKey(100 * time.Millisecond)
		if err != nil {
			t.Fatalf("ReadKey() #%d failed: %v", i, err)
		}
		if k != expected {
			t.Errorf("ReadKey() #%d = %q, expected %q", i, k, expected)
		}
	}

	// Input drained: the next read times out
	k, err := c.ReadKey(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadKey() failed: %v", err)
	}
	if k.Type != KeyNone {
		t.Errorf("ReadKey() after drain = %q, expected no key", k)
	}
}

func TestConsoleReadKeyTimeout(t *testing.T) {
	c, _ := newPipeConsole(t)

	start := time.Now()
	k, err := c.ReadKey(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadKey() failed: %v", err)
	}
	if k.Type != KeyNone {
		t.Errorf("ReadKey() = %q, expected no key", k)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("ReadKey() returned after %v, expected to wait for the timeout", elapsed)
	}
}
