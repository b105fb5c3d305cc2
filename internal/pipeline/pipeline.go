// Package pipeline drives the sequential batch: every source item is
// fetched, optionally resized, uniquified, size-fitted, uploaded, and
// rendered before the next item starts.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/hammyapp/hammy/internal/img"
	"github.com/hammyapp/hammy/internal/linkfmt"
	"github.com/hammyapp/hammy/internal/logutil"
	"github.com/hammyapp/hammy/internal/sink"
	"github.com/hammyapp/hammy/internal/source"
	"github.com/hammyapp/hammy/internal/upload"
)

// Fetcher retrieves raw bytes for a path or URL.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// Uploader posts a finished buffer and returns the hosted link.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (*upload.Result, error)
}

// Pipeline wires the stages together. Width zero keeps the original
// dimensions unless the fitter has to shrink the item anyway.
type Pipeline struct {
	Fetcher  Fetcher
	Fitter   *img.Fitter
	Uploader Uploader
	Style    linkfmt.Style
	Width    int
	Sinks    []sink.Sink
}

// Run processes each source in order and never aborts the batch on a
// single item's failure. The returned results preserve input order.
func (p *Pipeline) Run(ctx context.Context, sources []string) []ItemResult {
	batchID := uuid.NewString()
	logutil.Debugf("batch %s: %d item(s)", batchID, len(sources))

	results := make([]ItemResult, 0, len(sources))
	for _, src := range sources {
		result := NewItemResult(src)

		link, err := p.processOne(ctx, src)
		if err != nil {
			logutil.Errorf("%s: %v", source.BaseName(src), err)
			result.Fail(err)
			results = append(results, result)
			continue
		}

		for _, s := range p.Sinks {
			if err := s.Write(link); err != nil {
				logutil.Errorf("write link for %s: %v", source.BaseName(src), err)
			}
		}

		result.Succeed(link)
		results = append(results, result)
	}

	logutil.Debugf("batch %s: %d uploaded, %d failed", batchID, countStatus(results, StatusUploaded), countStatus(results, StatusFailed))
	return results
}

func (p *Pipeline) processOne(ctx context.Context, src string) (string, error) {
	data, err := p.Fetcher.Fetch(ctx, src)
	if err != nil {
		return "", err
	}

	info, err := img.Probe(data)
	if err != nil {
		return "", err
	}

	if p.Width > 0 {
		data, err = img.EncodeForWidth(data, p.Width, info.Animated)
		if err != nil {
			return "", err
		}
	}

	stuffed, err := img.Stuff(data)
	if err != nil {
		return "", err
	}

	fitted, err := p.Fitter.Fit(stuffed, info.Animated)
	if err != nil {
		return "", err
	}

	res, err := p.Uploader.Upload(ctx, fitted, source.BaseName(src))
	if err != nil {
		return "", err
	}

	return linkfmt.Format(p.Style, res.URL, res.ImageID)
}

func countStatus(results []ItemResult, status Status) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}
