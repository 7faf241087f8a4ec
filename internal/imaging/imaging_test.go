package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func TestProcessJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
}

func TestProcessPNGConvertsToJPEG(t *testing.T) {
	data := createTestPNG(50, 50)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected PNG to re-encode as image/jpeg, got %s", result.MIME)
	}
}

func TestProcessDownscalesLargeLogo(t *testing.T) {
	data := createTestJPEG(MaxDimension*2, MaxDimension)
	result, err := Process(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected dimensions within %d, got %dx%d", MaxDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessRejectsTinyLogo(t *testing.T) {
	data := createTestPNG(MinDimension-1, MinDimension)
	if _, err := Process(bytes.NewReader(data)); err == nil {
		t.Errorf("expected error for logo below %dpx", MinDimension)
	}

	data = createTestPNG(MinDimension, MinDimension)
	if _, err := Process(bytes.NewReader(data)); err != nil {
		t.Errorf("expected %dpx logo to be accepted, got %v", MinDimension, err)
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	if _, err := Process(bytes.NewReader([]byte("plain text, not an image"))); err == nil {
		t.Error("expected error for non-image data")
	}
}
