// Package vision holds the average-color heuristic used to bucket product
// photos. It is a stateless input to output function with no model behind
// it.
package vision

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
)

type Label string

const (
	LabelFreshProduce  Label = "fresh produce"
	LabelRipeProduce   Label = "ripe produce"
	LabelPackagedGoods Label = "packaged goods"
	LabelUnclassified  Label = "unclassified"
)

// A channel must beat both others by this much (8-bit scale) to count as
// dominant.
const dominanceMargin = 16

// Classify decodes a PNG or JPEG image, averages its pixels and labels the
// image by the dominant color channel: green reads as fresh produce, red as
// ripe produce, blue as packaged goods.
func Classify(r io.Reader) (Label, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	pixels := uint64(bounds.Dx()) * uint64(bounds.Dy())
	if pixels == 0 {
		return LabelUnclassified, nil
	}

	var sumR, sumG, sumB uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			sumR += uint64(r16 >> 8)
			sumG += uint64(g16 >> 8)
			sumB += uint64(b16 >> 8)
		}
	}

	avgR := sumR / pixels
	avgG := sumG / pixels
	avgB := sumB / pixels

	switch {
	case avgG >= avgR+dominanceMargin && avgG >= avgB+dominanceMargin:
		return LabelFreshProduce, nil
	case avgR >= avgG+dominanceMargin && avgR >= avgB+dominanceMargin:
		return LabelRipeProduce, nil
	case avgB >= avgR+dominanceMargin && avgB >= avgG+dominanceMargin:
		return LabelPackagedGoods, nil
	default:
		return LabelUnclassified, nil
	}
}
