// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec maps file extensions to image decoders. The Registry is the
// injected decode capability for the converter: pixel data goes through it,
// metadata never does, so the re-encoded output carries none by construction.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gen2brain/heic"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupported is returned by Decode when no decoder is registered for a
// file's extension. It is distinguishable from a decoder rejecting corrupt
// content.
var ErrUnsupported = errors.New("no decoder registered for extension")

// DecodeFunc reads one image from r.
type DecodeFunc func(r io.Reader) (image.Image, error)

// Registry maps a lowercase, dotless extension to a decoder.
type Registry struct {
	decoders map[string]DecodeFunc
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{decoders: make(map[string]DecodeFunc)}
}

// Default returns a registry with the built-in decoders: HEIC/HEIF, PNG,
// TIFF, WebP, and BMP. JPEG input is deliberately absent — its destination
// path would equal its source path.
func Default() *Registry {
	r := New()
	r.Register("heic", heic.Decode)
	r.Register("heif", heic.Decode)
	r.Register("png", png.Decode)
	r.Register("tiff", tiff.Decode)
	r.Register("tif", tiff.Decode)
	r.Register("webp", webp.Decode)
	r.Register("bmp", bmp.Decode)
	return r
}

// Register adds a decoder for ext (lowercased, leading dot stripped).
func (r *Registry) Register(ext string, fn DecodeFunc) {
	r.decoders[normalize(ext)] = fn
}

// Lookup returns the decoder for ext, if one is registered.
func (r *Registry) Lookup(ext string) (DecodeFunc, bool) {
	fn, ok := r.decoders[normalize(ext)]
	return fn, ok
}

// Extensions returns the registered extensions, sorted, for diagnostics.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.decoders))
	for e := range r.decoders {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// Decode opens the file at path and decodes it with the decoder registered
// for its extension. Returns ErrUnsupported (wrapped) when the extension has
// no decoder.
func (r *Registry) Decode(path string) (image.Image, error) {
	ext := normalize(filepath.Ext(path))
	fn, ok := r.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := fn(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func normalize(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
