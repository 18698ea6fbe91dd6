package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Debug("hidden")
	logger.Notice("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug message leaked through notice level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "[test]") {
		t.Fatalf("expected notice message tagged with module; got %q", buf.String())
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("frame %d", 3)
	if !strings.Contains(buf.String(), "frame 3") {
		t.Fatalf("expected debug message at debug level; got %q", buf.String())
	}
}
