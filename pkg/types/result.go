// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data records shared across heicjpg packages.
package types

// Status indicates the outcome of converting one source file.
type Status string

const (
	// StatusConverted means the JPEG was written successfully.
	StatusConverted Status = "converted"

	// StatusSkipped means the destination already existed; nothing was
	// written and the original was left in place.
	StatusSkipped Status = "skipped"

	// StatusFailed means decode or encode failed; no output file exists.
	StatusFailed Status = "failed"
)

// Result records the outcome of one source file. Exactly one Result is
// produced per discovered file, and it is never mutated after creation.
type Result struct {
	// Source is the path of the input image.
	Source string `json:"source" yaml:"source"`

	// Dest is the path of the output JPEG. Set even on failure, so a
	// reader can tell which destination was attempted.
	Dest string `json:"dest" yaml:"dest"`

	// Status is the conversion outcome.
	Status Status `json:"status" yaml:"status"`

	// Reason holds the error detail when Status is failed.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Deleted reports whether the original file was removed after a
	// successful conversion.
	Deleted bool `json:"deleted" yaml:"deleted"`

	// Warnings holds non-fatal problems attached to an otherwise
	// successful conversion (e.g. the original could not be deleted).
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
