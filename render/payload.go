// Package render turns a resolved avatar configuration into image bytes:
// SVG documents are generated natively, PNG output is delegated to an
// external rasterizer service. The package also defines the format-tagged
// payload type whose explicit encode/decode branching keeps binary images
// intact across the text-oriented cache store.
package render

import (
	"encoding/base64"
	"fmt"

	"github.com/glyphbox/initicon/options"
)

// Payload is a rendered image tagged with its format. The tag, not the
// payload bytes, drives every encoding decision: SVG is text and passes
// through the store unchanged, PNG is binary and travels base64-encoded.
// Branching on anything inferred from content would silently corrupt images
// on cache hits.
type Payload struct {
	format options.Format
	svg    string
	png    []byte
}

// SVG wraps an SVG document.
func SVG(doc string) Payload {
	return Payload{format: options.FormatSVG, svg: doc}
}

// PNG wraps binary PNG data.
func PNG(img []byte) Payload {
	return Payload{format: options.FormatPNG, png: img}
}

// Format returns the payload's format tag.
func (p Payload) Format() options.Format {
	return p.format
}

// ContentType returns the HTTP content type for the payload.
func (p Payload) ContentType() string {
	if p.format == options.FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Bytes returns the raw image bytes served to clients.
func (p Payload) Bytes() []byte {
	if p.format == options.FormatPNG {
		return p.png
	}
	return []byte(p.svg)
}

// Encode produces the store representation: SVG text as-is, PNG as base64.
func (p Payload) Encode() []byte {
	if p.format == options.FormatPNG {
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(p.png)))
		base64.StdEncoding.Encode(encoded, p.png)
		return encoded
	}
	return []byte(p.svg)
}

// Decode reconstructs a payload from its store representation. The format
// comes from the request's resolved configuration, mirroring the branch
// taken by Encode.
func Decode(format options.Format, stored []byte) (Payload, error) {
	if format == options.FormatPNG {
		img := make([]byte, base64.StdEncoding.DecodedLen(len(stored)))
		n, err := base64.StdEncoding.Decode(img, stored)
		if err != nil {
			return Payload{}, fmt.Errorf("render: decode cached png: %w", err)
		}
		return PNG(img[:n]), nil
	}
	return SVG(string(stored)), nil
}
