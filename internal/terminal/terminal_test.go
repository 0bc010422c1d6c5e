package terminal

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	tty := New(strings.NewReader("first\r\nsecond\nlast"), &out)

	want := []string{"first", "second", "last"}
	for _, w := range want {
		got, err := tty.ReadLine("> ")
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != w {
			t.Errorf("ReadLine = %q, want %q", got, w)
		}
	}

	if _, err := tty.ReadLine("> "); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got: %v", err)
	}
	if got := out.String(); got != "> > > > " {
		t.Errorf("prompts = %q", got)
	}
}

func TestReadLine_EmptyLine(t *testing.T) {
	tty := New(strings.NewReader("\n"), io.Discard)
	got, err := tty.ReadLine("")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if got != "" {
		t.Errorf("ReadLine = %q, want empty", got)
	}
}

func TestIsInteractive_File(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	if IsInteractive(f) {
		t.Error("regular file should not be interactive")
	}
}

func TestClose_NoDevice(t *testing.T) {
	tty := New(strings.NewReader(""), io.Discard)
	if err := tty.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
