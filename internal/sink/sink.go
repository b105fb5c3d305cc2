// Package sink delivers finished link lines to their destinations:
// console, system clipboard, or an append-only text file.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Sink receives each finished link in input order.
type Sink interface {
	Write(link string) error
	Close() error
}

// Console prints every link on its own line.
type Console struct {
	Out io.Writer
}

func (c *Console) Write(link string) error {
	_, err := fmt.Fprintln(c.Out, link)
	return err
}

func (c *Console) Close() error { return nil }

// Clipboard accumulates links and keeps the system clipboard updated
// after each one, so a partially failed batch still leaves the
// successful links pasteable.
type Clipboard struct {
	sep   string
	links []string
}

// NewClipboard clears the clipboard and returns an accumulating sink.
// Links are joined with newlines unless single is set.
func NewClipboard(single bool) (*Clipboard, error) {
	if err := clipboard.WriteAll(""); err != nil {
		return nil, fmt.Errorf("clipboard unavailable: %w", err)
	}
	sep := "\n"
	if single {
		sep = ""
	}
	return &Clipboard{sep: sep}, nil
}

func (c *Clipboard) Write(link string) error {
	c.links = append(c.links, link)
	return clipboard.WriteAll(strings.Join(c.links, c.sep))
}

func (c *Clipboard) Close() error { return nil }

// TextFile appends links to a timestamped file under dir.
type TextFile struct {
	path string
	file *os.File
	sep  string
}

// NewTextFile creates links-<timestamp>.txt under dir and returns an
// append-only sink for it.
func NewTextFile(dir string, single bool) (*TextFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create txt dir: %w", err)
	}

	name := fmt.Sprintf("links-%s.txt", time.Now().Format("2006-01-02-15-04-05"))
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open txt file: %w", err)
	}

	sep := "\n"
	if single {
		sep = ""
	}
	return &TextFile{path: path, file: file, sep: sep}, nil
}

// Path returns the file the links are appended to.
func (t *TextFile) Path() string { return t.path }

func (t *TextFile) Write(link string) error {
	_, err := t.file.WriteString(link + t.sep)
	return err
}

func (t *TextFile) Close() error { return t.file.Close() }
