package img

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
)

const maxPaletteColors = 256

// quantizeFrame reduces a resized frame to an indexed palette of at most
// maxColors entries, dithering with Floyd-Steinberg. Frames containing
// transparent pixels get a dedicated transparent palette slot so GIF
// transparency survives re-encoding.
func quantizeFrame(src *image.NRGBA, maxColors int) *image.Paletted {
	transparent := hasTransparency(src)
	budget := maxColors
	if transparent {
		budget--
	}

	palette := medianCut(src, budget)
	if transparent {
		palette = append(color.Palette{color.NRGBA{}}, palette...)
	}

	dst := image.NewPaletted(src.Bounds(), palette)
	draw.FloydSteinberg.Draw(dst, src.Bounds(), src, src.Bounds().Min)
	return dst
}

func hasTransparency(src *image.NRGBA) bool {
	for i := 3; i < len(src.Pix); i += 4 {
		if src.Pix[i] < 0x80 {
			return true
		}
	}
	return false
}

// medianCut derives a palette of at most maxColors opaque colors by
// recursively splitting the color space along its widest axis.
type colorBox struct {
	pixels     [][3]uint8
	rMin, rMax uint8
	gMin, gMax uint8
	bMin, bMax uint8
}

func newColorBox(pixels [][3]uint8) *colorBox {
	box := &colorBox{pixels: pixels, rMin: 255, gMin: 255, bMin: 255}
	for _, p := range pixels {
		if p[0] < box.rMin {
			box.rMin = p[0]
		}
		if p[0] > box.rMax {
			box.rMax = p[0]
		}
		if p[1] < box.gMin {
			box.gMin = p[1]
		}
		if p[1] > box.gMax {
			box.gMax = p[1]
		}
		if p[2] < box.bMin {
			box.bMin = p[2]
		}
		if p[2] > box.bMax {
			box.bMax = p[2]
		}
	}
	return box
}

func (b *colorBox) longestAxis() int {
	rRange := int(b.rMax) - int(b.rMin)
	gRange := int(b.gMax) - int(b.gMin)
	bRange := int(b.bMax) - int(b.bMin)
	if rRange >= gRange && rRange >= bRange {
		return 0
	}
	if gRange >= bRange {
		return 1
	}
	return 2
}

func (b *colorBox) average() color.NRGBA {
	if len(b.pixels) == 0 {
		return color.NRGBA{A: 255}
	}
	var rSum, gSum, bSum int64
	for _, p := range b.pixels {
		rSum += int64(p[0])
		gSum += int64(p[1])
		bSum += int64(p[2])
	}
	n := int64(len(b.pixels))
	return color.NRGBA{R: uint8(rSum / n), G: uint8(gSum / n), B: uint8(bSum / n), A: 255}
}

func (b *colorBox) volume() int {
	return (int(b.rMax) - int(b.rMin) + 1) *
		(int(b.gMax) - int(b.gMin) + 1) *
		(int(b.bMax) - int(b.bMin) + 1)
}

func medianCut(src *image.NRGBA, maxColors int) color.Palette {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Sample large frames instead of visiting every pixel.
	const maxSamples = 100000
	step := 1
	if w*h > maxSamples {
		step = (w * h) / maxSamples
	}

	pixels := make([][3]uint8, 0, w*h/step+1)
	for i := 0; i < w*h; i += step {
		off := i * 4
		if off+3 >= len(src.Pix) {
			break
		}
		if src.Pix[off+3] < 0x80 {
			continue
		}
		pixels = append(pixels, [3]uint8{src.Pix[off], src.Pix[off+1], src.Pix[off+2]})
	}

	if len(pixels) == 0 {
		return color.Palette{color.NRGBA{A: 255}}
	}

	boxes := []*colorBox{newColorBox(pixels)}
	for len(boxes) < maxColors {
		bestIdx := -1
		bestScore := -1
		for i, box := range boxes {
			if len(box.pixels) < 2 {
				continue
			}
			score := box.volume() * len(box.pixels)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			break
		}

		box := boxes[bestIdx]
		axis := box.longestAxis()
		sort.Slice(box.pixels, func(i, j int) bool {
			return box.pixels[i][axis] < box.pixels[j][axis]
		})

		mid := len(box.pixels) / 2
		boxes[bestIdx] = newColorBox(box.pixels[:mid])
		boxes = append(boxes, newColorBox(box.pixels[mid:]))
	}

	palette := make(color.Palette, len(boxes))
	for i, box := range boxes {
		palette[i] = box.average()
	}
	return palette
}
