package sniffer

import (
	"bytes"
	"errors"
	"testing"
)

func TestDetectHead(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want MediaType
		ext  string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, TypeJPEG, "jpg"},
		{"png", append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, 0, 0), TypePNG, "png"},
		{"gif", []byte("GIF89a....."), TypeGIF, "gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWEBP, "webp"},
		{"avif", []byte("\x00\x00\x00\x1cftypavif\x00\x00\x00\x00"), TypeAVIF, "avif"},
		{"svg", []byte("  <svg xmlns=\"http://www.w3.org/2000/svg\"></svg>"), TypeSVG, "svg"},
		{"xml svg", []byte("<?xml version=\"1.0\"?>\n<svg></svg>"), TypeSVG, "svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectHead(tt.head)
			if err != nil {
				t.Fatalf("DetectHead() error = %v", err)
			}
			if got.Type != tt.want {
				t.Errorf("Type = %q, want %q", got.Type, tt.want)
			}
			if got.Ext() != tt.ext {
				t.Errorf("Ext() = %q, want %q", got.Ext(), tt.ext)
			}
		})
	}
}

func TestDetectHead_Unknown(t *testing.T) {
	for _, head := range [][]byte{nil, []byte("hello world"), []byte("<?xml version=\"1.0\"?><rss/>"), []byte("%PDF-1.7")} {
		if _, err := DetectHead(head); !errors.Is(err, ErrUnknownType) {
			t.Errorf("DetectHead(%q) error = %v, want ErrUnknownType", head, err)
		}
	}
}

func TestDetect_ReturnsConsumedHead(t *testing.T) {
	body := append([]byte("GIF87a"), bytes.Repeat([]byte{1}, 1000)...)
	res, head, err := Detect(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if res.MIME != "image/gif" {
		t.Errorf("MIME = %q, want image/gif", res.MIME)
	}
	if len(head) != HeadSize {
		t.Errorf("len(head) = %d, want %d", len(head), HeadSize)
	}

	short := []byte{0xff, 0xd8, 0xff, 0xdb}
	_, head, err = Detect(bytes.NewReader(short))
	if err != nil {
		t.Fatalf("Detect(short) error = %v", err)
	}
	if !bytes.Equal(head, short) {
		t.Errorf("head = %v, want %v", head, short)
	}
}

func TestMediaTypeOf(t *testing.T) {
	tests := map[string]string{
		"":                             "",
		"image/png":                    "image/png",
		"image/svg+xml; charset=utf-8": "image/svg+xml",
		";;;":                          "",
	}
	for in, want := range tests {
		if got := MediaTypeOf(in); got != want {
			t.Errorf("MediaTypeOf(%q) = %q, want %q", in, got, want)
		}
	}
}
