// Package source retrieves raw image bytes from local paths or HTTP(S)
// URLs and discovers image files under directories.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Extensions the hosting API accepts, matched case-insensitively.
var Extensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// Some hosts refuse requests without a browser user-agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// NotFoundError is returned when a local source file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source file not found: %s", e.Path)
}

// FetchError is returned when a URL download fails, either at the
// transport layer or with a non-2xx status.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves raw bytes for a local path or a remote URL.
// Downloads are single-shot: retry lives in the upload client only.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher returns a fetcher with a bounded download timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 60 * time.Second}}
}

// Fetch reads the full contents of a file or URL.
func (f *Fetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	if IsURL(src) {
		return f.download(ctx, src)
	}

	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Path: src}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	return data, nil
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// HasImageExt reports whether the name carries an accepted extension.
func HasImageExt(name string) bool {
	_, ok := Extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// BaseName returns the filename part of a path or URL, used as the
// upload filename and in error messages.
func BaseName(src string) string {
	if IsURL(src) {
		if u, err := url.Parse(src); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(src)
}

// Discover expands a mix of files, directories, and URLs into one sorted
// work list. Directories are walked recursively; entries without an
// accepted extension are dropped. Missing files with a valid extension
// are kept so the fetch step can report them.
func Discover(args []string) []string {
	var items []string
	for _, arg := range args {
		if IsURL(arg) {
			if u, err := url.Parse(arg); err == nil && HasImageExt(u.Path) {
				items = append(items, arg)
			}
			continue
		}

		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			items = append(items, findImages(arg)...)
			continue
		}

		if HasImageExt(arg) {
			items = append(items, arg)
		}
	}

	sort.Strings(items)
	return items
}

func findImages(root string) []string {
	var found []string
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && HasImageExt(p) {
			found = append(found, p)
		}
		return nil
	})
	return found
}
