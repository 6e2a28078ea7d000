package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
)

func tinyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDataURLRoundTrip(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	url := EncodeDataURL("video/mp4", payload)

	if !IsDataURL(url) {
		t.Fatalf("IsDataURL(%q) = false, want true", url)
	}
	mimeType, data, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}
	if mimeType != "video/mp4" {
		t.Errorf("mime type = %q, want video/mp4", mimeType)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("payload = %v, want %v", data, payload)
	}
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	tests := []string{
		"https://example.com/image.png",
		"data:image/png,not-base64-marked",
		"data:image/png;base64,%%%",
		"",
	}
	for _, in := range tests {
		if _, _, err := DecodeDataURL(in); err == nil {
			t.Errorf("DecodeDataURL(%q) error = nil, want an error", in)
		}
	}
}

func TestEncodeDataURLSniffsMimeType(t *testing.T) {
	data := tinyPNG(t, 1, 1)
	url := EncodeDataURL("", data)
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	if url != want {
		t.Errorf("EncodeDataURL() = %q, want sniffed png mime type", url)
	}
}

func TestGetImageSize(t *testing.T) {
	data := tinyPNG(t, 12, 34)
	width, height, err := GetImageSize(data)
	if err != nil {
		t.Fatalf("GetImageSize() error = %v", err)
	}
	if width != 12 || height != 34 {
		t.Errorf("GetImageSize() = %dx%d, want 12x34", width, height)
	}
}

func TestGetImageSizeFromDataURL(t *testing.T) {
	data := tinyPNG(t, 5, 7)
	width, height, err := GetImageSizeFromDataURL(EncodeDataURL("image/png", data))
	if err != nil {
		t.Fatalf("GetImageSizeFromDataURL() error = %v", err)
	}
	if width != 5 || height != 7 {
		t.Errorf("GetImageSizeFromDataURL() = %dx%d, want 5x7", width, height)
	}
}
