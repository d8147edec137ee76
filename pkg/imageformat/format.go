// Package imageformat defines which output image formats are accepted and
// which encoder handles each of them.
package imageformat

import (
	"sort"
	"strings"
)

// Default is substituted for empty or unsupported extensions.
const Default = "jpg"

// Encoding identifies the encoder family that handles a format.
type Encoding int

const (
	// Native formats are encoded in-process.
	Native Encoding = iota
	// FFmpeg formats are encoded by an external ffmpeg process.
	FFmpeg
)

// Route describes how a format is encoded.
type Route struct {
	Encoding Encoding
	// Codec is the ffmpeg encoder name for FFmpeg routes.
	Codec string
}

var routes = map[string]Route{
	"bmp":  {Encoding: Native},
	"dib":  {Encoding: Native},
	"jpeg": {Encoding: Native},
	"jpg":  {Encoding: Native},
	"jpe":  {Encoding: Native},
	"png":  {Encoding: Native},
	"tiff": {Encoding: Native},
	"tif":  {Encoding: Native},
	"jp2":  {Encoding: FFmpeg, Codec: "jpeg2000"},
	"webp": {Encoding: FFmpeg, Codec: "libwebp"},
	"hdr":  {Encoding: FFmpeg, Codec: "hdr"},
	"pic":  {Encoding: FFmpeg, Codec: "hdr"}, // Radiance RGBE, same as .hdr
	"ppm":  {Encoding: FFmpeg, Codec: "ppm"},
	"pgm":  {Encoding: FFmpeg, Codec: "pgm"},
	"pbm":  {Encoding: FFmpeg, Codec: "pbm"},
}

// Supported returns the accepted extensions in sorted order.
func Supported() []string {
	exts := make([]string, 0, len(routes))
	for ext := range routes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether ext (already normalized) is accepted.
func IsSupported(ext string) bool {
	_, ok := routes[ext]
	return ok
}

// Normalize lowercases ext and strips surrounding space and a leading dot.
// Empty or unsupported extensions yield Default and false.
func Normalize(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimPrefix(ext, ".")
	if !IsSupported(ext) {
		return Default, false
	}
	return ext, true
}

// Lookup returns the encoder route for a normalized extension.
func Lookup(ext string) (Route, bool) {
	r, ok := routes[ext]
	return r, ok
}

// Canonical maps alias extensions to the name of the underlying format:
// "jpe" and "jpeg" to "jpg", "dib" to "bmp", "tif" to "tiff", "pic" to "hdr".
func Canonical(ext string) string {
	switch ext {
	case "jpeg", "jpe":
		return "jpg"
	case "dib":
		return "bmp"
	case "tif":
		return "tiff"
	case "pic":
		return "hdr"
	default:
		return ext
	}
}
