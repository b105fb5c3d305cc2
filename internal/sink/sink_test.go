package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleWritesOneLinkPerLine(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}

	for _, link := range []string{"https://hamster.is/i/a.jpg", "https://hamster.is/i/b.jpg"} {
		if err := c.Write(link); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	want := "https://hamster.is/i/a.jpg\nhttps://hamster.is/i/b.jpg\n"
	if buf.String() != want {
		t.Fatalf("console output:\n got  %q\n want %q", buf.String(), want)
	}
}

func TestTextFileAppendsLinks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "txt")
	tf, err := NewTextFile(dir, false)
	if err != nil {
		t.Fatalf("NewTextFile returned error: %v", err)
	}

	if err := tf.Write("a"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := tf.Write("b"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := tf.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(tf.Path()), "links-") {
		t.Fatalf("unexpected file name: %s", tf.Path())
	}

	data, err := os.ReadFile(tf.Path())
	if err != nil {
		t.Fatalf("read txt file: %v", err)
	}
	if string(data) != "a\nb\n" {
		t.Fatalf("file contents %q, want %q", data, "a\nb\n")
	}
}

func TestTextFileSingleOmitsSeparator(t *testing.T) {
	tf, err := NewTextFile(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewTextFile returned error: %v", err)
	}

	if err := tf.Write("a"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := tf.Write("b"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := tf.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(tf.Path())
	if err != nil {
		t.Fatalf("read txt file: %v", err)
	}
	if string(data) != "ab" {
		t.Fatalf("file contents %q, want %q", data, "ab")
	}
}
