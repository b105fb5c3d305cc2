// internal/img/codec.go
package img

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"math"

	"github.com/disintegration/imaging"

	// The hosting API accepts webp sources; imaging registers the other
	// supported formats (jpeg, png, gif, bmp) itself.
	_ "golang.org/x/image/webp"
)

const jpegQuality = 80

// Info describes a decoded image buffer.
type Info struct {
	Width    int
	Height   int
	Animated bool
}

// Probe reads the dimensions and animation flag of an image buffer
// without decoding full pixel data for static formats.
func Probe(data []byte) (Info, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, &DecodeError{Err: err}
	}

	info := Info{Width: cfg.Width, Height: cfg.Height}
	if g, err := gif.DecodeAll(bytes.NewReader(data)); err == nil && len(g.Image) > 1 {
		info.Animated = true
	}
	return info, nil
}

// EncodeForWidth resizes the buffer to the target width, dispatching on
// the animation flag so call sites never branch themselves.
func EncodeForWidth(data []byte, width int, animated bool) ([]byte, error) {
	if animated {
		return EncodeAnimated(data, width)
	}
	return EncodeStatic(data, width)
}

// EncodeStatic resizes a single-frame image to the target width and
// re-encodes it as JPEG. Height keeps the source aspect ratio.
func EncodeStatic(data []byte, width int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	bounds := src.Bounds()
	if err := validateWidth(width, bounds.Dx()); err != nil {
		return nil, err
	}

	height := derivedHeight(width, bounds.Dx(), bounds.Dy())
	resized := imaging.Resize(src, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeAnimated resizes every frame of an animated GIF to the target
// width, quantizes each frame back to an indexed palette with dithering,
// and reassembles the animation. Frame order, per-frame delay, and the
// loop count survive the round trip; disposal is set to background-clear
// so resized partial frames cannot bleed into each other.
func EncodeAnimated(data []byte, width int) ([]byte, error) {
	src, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(src.Image) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("gif has no frames")}
	}

	canvasW, canvasH := src.Config.Width, src.Config.Height
	if canvasW == 0 || canvasH == 0 {
		first := src.Image[0].Bounds()
		canvasW, canvasH = first.Dx(), first.Dy()
	}
	if err := validateWidth(width, canvasW); err != nil {
		return nil, err
	}
	height := derivedHeight(width, canvasW, canvasH)

	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(src.Image)),
		Delay:     make([]int, len(src.Image)),
		Disposal:  make([]byte, len(src.Image)),
		LoopCount: src.LoopCount,
		Config: image.Config{
			Width:  width,
			Height: height,
		},
	}

	canvas := image.Rect(0, 0, canvasW, canvasH)
	for i, frame := range src.Image {
		full := padFrame(frame, canvas)
		resized := imaging.Resize(full, width, height, imaging.Lanczos)
		out.Image[i] = quantizeFrame(resized, maxPaletteColors)
		out.Delay[i] = src.Delay[i]
		out.Disposal[i] = gif.DisposalBackground
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

// padFrame draws a frame onto a transparent full-size canvas. GIF frames
// may cover only the region that changed since the previous frame, and
// resizing such a partial frame in isolation would misplace it.
func padFrame(frame *image.Paletted, canvas image.Rectangle) *image.NRGBA {
	full := image.NewNRGBA(canvas)
	draw.Draw(full, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	return full
}

func derivedHeight(width, srcW, srcH int) int {
	return int(math.Round(float64(width) * float64(srcH) / float64(srcW)))
}

func validateWidth(width, current int) error {
	if width < 1 || width >= current {
		return &InvalidWidthError{Width: width, Current: current}
	}
	return nil
}
