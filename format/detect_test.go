package format

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, "PNG"},
		{JPEG, "JPEG"},
		{TIFF, "TIFF"},
		{BMP, "BMP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PNG, ".png"},
		{JPEG, ".jpg"},
		{TIFF, ".tiff"},
		{BMP, ".bmp"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"page_0001.png", PNG},
		{"page_0001.PNG", PNG},
		{"page_0001.jpg", JPEG},
		{"page_0001.jpeg", JPEG},
		{"page_0001.JPG", JPEG},
		{"page_0001.tif", TIFF},
		{"page_0001.tiff", TIFF},
		{"page_0001.TIFF", TIFF},
		{"page_0001.bmp", BMP},
		{"page_0001.BMP", BMP},
		{"page_0001.pdf", Unknown},
		{"page_0001.txt", Unknown},
		{"page_0001", Unknown},
		{"", Unknown},
		{"/scans/raisio/page_0001.png", PNG},
		{"/scans/raisio/page_0001.jpeg", JPEG},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestIsPageImage(t *testing.T) {
	if !IsPageImage("page_0003.png") {
		t.Error("expected page_0003.png to count as a page image")
	}
	if IsPageImage("manifest.json") {
		t.Error("manifest.json must not count as a page image")
	}
}

func TestDetectFromMagic(t *testing.T) {
	var realPNG bytes.Buffer
	_ = png.Encode(&realPNG, image.NewGray(image.Rect(0, 0, 2, 2)))

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "encoded PNG",
			data: realPNG.Bytes(),
			want: PNG,
		},
		{
			name: "JPEG magic bytes",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			want: JPEG,
		},
		{
			name: "TIFF little-endian",
			data: []byte{'I', 'I', 0x2A, 0x00, 0x08, 0x00},
			want: TIFF,
		},
		{
			name: "TIFF big-endian",
			data: []byte{'M', 'M', 0x00, 0x2A, 0x00, 0x08},
			want: TIFF,
		},
		{
			name: "BMP magic bytes",
			data: []byte{'B', 'M', 0x36, 0x00, 0x00, 0x00},
			want: BMP,
		},
		{
			name: "PDF is not a page image",
			data: []byte("%PDF-1.4"),
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "truncated PNG signature",
			data: []byte{0x89, 'P', 'N'},
			want: Unknown,
		},
		{
			name: "plain text",
			data: []byte("Tilinpäätös 2024"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}
