// Package format identifies page-image formats for the scan path.
// Scanned reports arrive as one image file per page; the scanner only
// feeds recognized raster formats to the OCR engine.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported page-image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// TIFF indicates a TIFF image.
	TIFF
	// BMP indicates a Windows bitmap image.
	BMP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tiff"
	case BMP:
		return ".bmp"
	default:
		return ""
	}
}

// Detect determines image format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	default:
		return Unknown
	}
}

// IsPageImage reports whether the filename carries a supported
// page-image extension.
func IsPageImage(filename string) bool {
	return Detect(filename) != Unknown
}

// Magic byte signatures. TIFF has two, one per byte order.
var (
	pngMagic    = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	jpegMagic   = []byte{0xFF, 0xD8, 0xFF}
	tiffLEMagic = []byte{'I', 'I', 0x2A, 0x00}
	tiffBEMagic = []byte{'M', 'M', 0x00, 0x2A}
	bmpMagic    = []byte{'B', 'M'}
)

// DetectFromMagic checks leading magic bytes to determine the format.
// This is more reliable than extension-based detection and catches
// renamed files. Returns Unknown when no signature matches.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG
	case bytes.HasPrefix(data, tiffLEMagic), bytes.HasPrefix(data, tiffBEMagic):
		return TIFF
	case bytes.HasPrefix(data, bmpMagic):
		return BMP
	default:
		return Unknown
	}
}
