package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func solidImage(t *testing.T, c color.RGBA) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		color color.RGBA
		want  Label
	}{
		{"green reads as fresh produce", color.RGBA{R: 30, G: 200, B: 30, A: 255}, LabelFreshProduce},
		{"red reads as ripe produce", color.RGBA{R: 220, G: 40, B: 40, A: 255}, LabelRipeProduce},
		{"blue reads as packaged goods", color.RGBA{R: 40, G: 40, B: 210, A: 255}, LabelPackagedGoods},
		{"gray has no dominant channel", color.RGBA{R: 128, G: 128, B: 128, A: 255}, LabelUnclassified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(solidImage(t, tc.color))
			if err != nil {
				t.Fatalf("classify failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestClassify_NotAnImage(t *testing.T) {
	if _, err := Classify(strings.NewReader("definitely not pixels")); err == nil {
		t.Error("expected decode error")
	}
}
