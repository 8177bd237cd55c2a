// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert re-encodes decoded images as metadata-free JPEG files.
// The encoder is only ever handed pixel data and a quality setting, so EXIF,
// XMP, and location/device tags cannot survive into the output.
package convert

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/heicjpg/pkg/types"
)

// Decoder decodes one image file into pixels. The HEIC codec sits behind
// this so it can be swapped per platform without touching the pipeline.
type Decoder interface {
	// Decode reads the image at path and returns its pixel data.
	Decode(path string) (image.Image, error)
}

// Options configures a conversion run. Built once at startup, read-only
// thereafter.
type Options struct {
	// Quality is the JPEG encoder quality, 1 (most lossy) to 100.
	Quality int

	// DeleteOriginal removes the source file after a successful conversion.
	DeleteOriginal bool

	// KeepTimes restores the source file's modification time onto the
	// output JPEG.
	KeepTimes bool
}

// Validate checks Options before any file is processed.
func (o Options) Validate() error {
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("quality %d out of range [1,100]", o.Quality)
	}
	return nil
}

// BatchResult holds the outcome counts of a conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Deleted   int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile converts one source image to a JPEG next to it (same stem,
// .jpg extension), writing a per-file status line to w. If the destination
// already exists the file is skipped: nothing is written and the original is
// never deleted, even with DeleteOriginal set. On failure no output file is
// left behind.
func ConvertFile(d Decoder, path string, opts Options, w io.Writer) types.Result {
	dst := strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	res := types.Result{Source: path, Dest: dst}
	base := filepath.Base(path)

	if _, err := os.Stat(dst); err == nil {
		res.Status = types.StatusSkipped
		fmt.Fprintf(w, "skipped: %s (%s already exists)\n", base, filepath.Base(dst))
		return res
	}

	srcInfo, err := os.Stat(path)
	if err != nil {
		return fail(res, w, base, err)
	}

	img, err := d.Decode(path)
	if err != nil {
		return fail(res, w, base, err)
	}

	if err := writeJPEG(dst, img, opts.Quality); err != nil {
		return fail(res, w, base, err)
	}

	res.Status = types.StatusConverted
	fmt.Fprintf(w, "converted: %s -> %s\n", base, filepath.Base(dst))

	if opts.KeepTimes {
		mtime := srcInfo.ModTime()
		if err := os.Chtimes(dst, mtime, mtime); err != nil {
			warn(&res, w, base, fmt.Sprintf("could not restore times: %v", err))
		}
	}

	if opts.DeleteOriginal {
		if err := os.Remove(path); err != nil {
			// The conversion already succeeded; a stuck original is a
			// warning, not a failure.
			warn(&res, w, base, fmt.Sprintf("could not delete original: %v", err))
		} else {
			res.Deleted = true
			fmt.Fprintf(w, "  deleted original %s\n", base)
		}
	}

	return res
}

// ConvertBatch processes paths sequentially, printing per-file status lines
// and a final summary to w. A failure on one file never aborts the rest.
func ConvertBatch(d Decoder, paths []string, opts Options, w io.Writer) ([]types.Result, BatchResult) {
	results := make([]types.Result, 0, len(paths))
	var batch BatchResult

	for _, p := range paths {
		res := ConvertFile(d, p, opts, w)
		results = append(results, res)
		switch res.Status {
		case types.StatusConverted:
			batch.Converted++
		case types.StatusSkipped:
			batch.Skipped++
		case types.StatusFailed:
			batch.Failed++
		}
		if res.Deleted {
			batch.Deleted++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed, %d deleted (total: %d)\n",
		batch.Converted, batch.Skipped, batch.Failed, batch.Deleted, batch.Total())
	return results, batch
}

// writeJPEG encodes img into dst via a temp file in the same directory,
// renamed into place only after a complete encode. A partial or corrupt
// output must never be left where it could pass for sanitized output.
func writeJPEG(dst string, img image.Image, quality int) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".heicjpg-*.tmp")
	if err != nil {
		return err
	}

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: quality}); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// warn records a non-fatal problem on the result and reports it. Warnings
// accumulate; a later one never displaces an earlier one.
func warn(res *types.Result, w io.Writer, base, msg string) {
	res.Warnings = append(res.Warnings, msg)
	fmt.Fprintf(w, "  warning: %s: %s\n", base, msg)
}

func fail(res types.Result, w io.Writer, base string, err error) types.Result {
	res.Status = types.StatusFailed
	res.Reason = err.Error()
	fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
	return res
}
