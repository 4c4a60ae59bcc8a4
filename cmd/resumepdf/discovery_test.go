package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverResumes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", sampleResumeYAML)
	writeFile(t, dir, filepath.Join("sub", "b.JSON"), sampleResumeJSON)
	writeFile(t, dir, filepath.Join("sub", "c.yml"), sampleResumeYAML)
	writeFile(t, dir, "readme.md", "# not a resume")

	t.Run("directory next to inputs", func(t *testing.T) {
		t.Parallel()

		files, err := discoverResumes([]string{dir}, "")
		if err != nil {
			t.Fatalf("discoverResumes() error = %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("len(files) = %d, want 3: %+v", len(files), files)
		}
		if files[0].OutputPath != filepath.Join(dir, "a.pdf") {
			t.Errorf("files[0].OutputPath = %q", files[0].OutputPath)
		}
	})

	t.Run("directory mirrored into output dir", func(t *testing.T) {
		t.Parallel()

		files, err := discoverResumes([]string{dir}, "out")
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]bool{
			filepath.Join("out", "a.pdf"):        true,
			filepath.Join("out", "sub", "b.pdf"): true,
			filepath.Join("out", "sub", "c.pdf"): true,
		}
		for _, f := range files {
			if !want[f.OutputPath] {
				t.Errorf("unexpected output %q", f.OutputPath)
			}
		}
	})

	t.Run("duplicates rendered once", func(t *testing.T) {
		t.Parallel()

		files, err := discoverResumes([]string{a, dir, a}, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 3 {
			t.Errorf("len(files) = %d, want 3", len(files))
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		if _, err := discoverResumes(nil, ""); !errors.Is(err, ErrNoInput) {
			t.Errorf("no inputs error = %v, want ErrNoInput", err)
		}
		if _, err := discoverResumes([]string{filepath.Join(dir, "readme.md")}, ""); !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("markdown input error = %v, want ErrInvalidExtension", err)
		}
		if _, err := discoverResumes([]string{filepath.Join(dir, "nope.yaml")}, ""); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("missing input error = %v, want os.ErrNotExist", err)
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{name: "next to input", input: filepath.Join("cv", "jane.yaml"), want: filepath.Join("cv", "jane.pdf")},
		{name: "flat output dir", input: filepath.Join("cv", "jane.json"), outputDir: "out", want: filepath.Join("out", "jane.pdf")},
		{name: "mirrored", input: filepath.Join("cv", "team", "jane.yml"), outputDir: "out", baseDir: "cv", want: filepath.Join("out", "team", "jane.pdf")},
	}
	for _, tt := range tests {
		if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
			t.Errorf("%s: resolveOutputPath() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 8} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) error = %v", n, err)
		}
	}
	for _, n := range []int{-1, 9} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}

func TestMarkupOutputPath(t *testing.T) {
	t.Parallel()

	if got := markupOutputPath(filepath.Join("out", "cv.pdf")); got != filepath.Join("out", "cv.md") {
		t.Errorf("markupOutputPath() = %q", got)
	}
}
