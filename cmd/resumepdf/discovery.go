package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	resumepdf "github.com/alnah/go-resumepdf"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("resume file must have .yaml, .yml or .json extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrNoInput            = errors.New("no input specified")
)

var resumeExtensions = []string{".yaml", ".yml", ".json"}

// ResumeFile is a single resume to render.
type ResumeFile struct {
	InputPath  string
	OutputPath string
}

// discoverResumes expands inputs (files or directories) into resume files.
// Directories are walked recursively; their layout is mirrored under outputDir.
// A file reached twice is rendered once.
func discoverResumes(inputs []string, outputDir string) ([]ResumeFile, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	var files []ResumeFile
	seen := make(map[string]bool)
	add := func(path, baseDir string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		files = append(files, ResumeFile{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, baseDir)})
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateResumeExtension(input); err != nil {
				return nil, err
			}
			add(input, "")
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !hasResumeExtension(path) {
				return nil
			}
			add(path, input)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// resolveOutputPath determines the PDF output path for a resume file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

func hasResumeExtension(path string) bool {
	return slices.Contains(resumeExtensions, strings.ToLower(filepath.Ext(path)))
}

// validateResumeExtension checks that the file has a resume extension.
func validateResumeExtension(path string) error {
	if !hasResumeExtension(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > resumepdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, resumepdf.MaxPoolSize)
	}
	return nil
}

// markupOutputPath returns the markup path corresponding to a PDF path.
func markupOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".md"
}
