package main

import (
	"errors"
	"fmt"
	"os"

	resumepdf "github.com/alnah/go-resumepdf"
	"github.com/alnah/go-resumepdf/internal/yamlutil"
)

// Sentinel errors for resume input.
var (
	ErrReadResume    = errors.New("failed to read resume file")
	ErrInvalidResume = errors.New("invalid resume file")
)

// loadResume reads a YAML or JSON resume and validates it.
// JSON documents are valid YAML and decode through the same path.
func loadResume(path string) (*resumepdf.Resume, error) {
	if err := validateResumeExtension(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadResume, err)
	}

	var r resumepdf.Resume
	if err := yamlutil.UnmarshalStrict(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResume, path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResume, path, err)
	}
	return &r, nil
}
