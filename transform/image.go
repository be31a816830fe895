package transform

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var (
	_ pipeline.Transform = (*Grayscaler)(nil)
	_ pipeline.Transform = (*Brightener)(nil)
)

// Grayscaler converts image payloads to 8-bit grayscale, 1:1. A non-image
// payload is a component failure.
type Grayscaler struct{}

// Grayscale creates a transform that converts image records to grayscale.
func Grayscale() *Grayscaler { return &Grayscaler{} }

// Apply redraws the image into a grayscale buffer.
func (Grayscaler) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	img, err := imagePayload(item)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return []stream.Item{item.WithData(gray)}, nil
}

// Describe identifies the transform for logs and faults.
func (Grayscaler) Describe() string { return "transform.grayscale" }

// Brightener scales image channel intensities by a fixed factor: 0 yields
// black, 1 the original image, values above 1 brighten with clamping.
// A non-image payload is a component failure.
type Brightener struct {
	factor float64
}

// Brightness creates a transform that adjusts image brightness.
func Brightness(factor float64) *Brightener { return &Brightener{factor: factor} }

// Apply scales every pixel's color channels, preserving alpha.
func (t *Brightener) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	img, err := imagePayload(item)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	out := image.NewRGBA64(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA64(x, y, color.RGBA64{
				R: scaleChannel(r, t.factor),
				G: scaleChannel(g, t.factor),
				B: scaleChannel(b, t.factor),
				A: uint16(a),
			})
		}
	}
	return []stream.Item{item.WithData(out)}, nil
}

// Describe identifies the transform for logs and faults.
func (t *Brightener) Describe() string { return fmt.Sprintf("transform.brightness(%g)", t.factor) }

func scaleChannel(v uint32, factor float64) uint16 {
	scaled := float64(v) * factor
	if scaled < 0 {
		return 0
	}
	if scaled > 0xffff {
		return 0xffff
	}
	return uint16(scaled)
}

func imagePayload(item stream.Item) (image.Image, error) {
	img, ok := item.Data.(image.Image)
	if !ok {
		return nil, fmt.Errorf("expected an image payload, got %T", item.Data)
	}
	return img, nil
}
