package img

import (
	"crypto/rand"
	"fmt"
)

// TrailerSize is the number of random bytes appended to every upload.
const TrailerSize = 16

// Stuff returns data followed by 16 random bytes. The trailer changes
// the payload hash without touching visible content, so the hosting
// API's duplicate detection never collapses repeated uploads. It must
// run before the size ceiling check so the fitter accounts for it.
func Stuff(data []byte) ([]byte, error) {
	trailer := make([]byte, TrailerSize)
	if _, err := rand.Read(trailer); err != nil {
		return nil, fmt.Errorf("random trailer: %w", err)
	}

	out := make([]byte, 0, len(data)+TrailerSize)
	out = append(out, data...)
	return append(out, trailer...), nil
}
