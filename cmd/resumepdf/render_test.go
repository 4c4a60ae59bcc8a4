package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// ---------------------------------------------------------------------------
// TestRunRenderCmd - End-to-end single renders
// ---------------------------------------------------------------------------

func TestRunRenderCmd(t *testing.T) {
	t.Parallel()

	t.Run("default output uses suggested filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		env, stdout, stderr := testEnv(nil)

		if code := runRenderCmd([]string{"--no-custom-fonts", input}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		want := filepath.Join(dir, "Jane-Doe.pdf")
		assertPDF(t, want)
		if !strings.Contains(stdout.String(), "Created "+want) {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("explicit output and markup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		out := filepath.Join(dir, "out", "cv.pdf")
		env, _, stderr := testEnv(nil)

		args := []string{"--no-custom-fonts", "-t", "modern", "-o", out, "--markup", input}
		if code := runRenderCmd(args, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		assertPDF(t, out)
		markup, err := os.ReadFile(filepath.Join(dir, "out", "cv.md"))
		if err != nil {
			t.Fatalf("markup not written: %v", err)
		}
		for _, want := range []string{"template: modern", "Staff Engineer", "Present"} {
			if !strings.Contains(string(markup), want) {
				t.Errorf("markup missing %q", want)
			}
		}
	})

	t.Run("output directory receives suggested filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "john.json", sampleResumeJSON)
		outDir := filepath.Join(dir, "pdfs") + string(filepath.Separator)
		env, _, stderr := testEnv(nil)

		if code := runRenderCmd([]string{"--no-custom-fonts", "-q", "-o", outDir, input}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		assertPDF(t, filepath.Join(dir, "pdfs", "John-Roe.pdf"))
	})

	t.Run("unknown template warns and renders default", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		env, stdout, stderr := testEnv(nil)

		if code := runRenderCmd([]string{"--no-custom-fonts", "-v", "-t", "fancy", input}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(stderr.String(), `unknown template "fancy", using "default"`) {
			t.Errorf("stderr = %q", stderr.String())
		}
		if !strings.Contains(stdout.String(), "template default") {
			t.Errorf("verbose stdout = %q", stdout.String())
		}
	})

	t.Run("missing fonts warn but succeed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		env, _, stderr := testEnv(nil)

		args := []string{"--font-path", filepath.Join(dir, "no-fonts"), input}
		if code := runRenderCmd(args, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if !strings.Contains(stderr.String(), "rendered with builtin fonts") {
			t.Errorf("stderr = %q", stderr.String())
		}
		if !strings.Contains(stderr.String(), "font asset unavailable") {
			t.Error("font degradation should be logged at warn level")
		}
	})

	t.Run("quiet suppresses warnings", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		env, stdout, stderr := testEnv(map[string]string{"RESUMEPDF_TYPO": "1"})

		args := []string{"-q", "--font-path", filepath.Join(dir, "no-fonts"), "-t", "fancy", input}
		if code := runRenderCmd(args, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("quiet run wrote stdout %q, stderr %q", stdout.String(), stderr.String())
		}
	})

	t.Run("custom fonts from environment", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fonts := filepath.Join(dir, "fonts")
		writeFile(t, fonts, "Lato-Regular.ttf", string(goregular.TTF))
		writeFile(t, fonts, "Lato-Bold.ttf", string(gobold.TTF))
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		env, _, stderr := testEnv(map[string]string{"RESUMEPDF_FONT_PATH": fonts})

		if code := runRenderCmd([]string{"-o", filepath.Join(dir, "cv.pdf"), input}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
		}
		if stderr.Len() != 0 {
			t.Errorf("embedded fonts should not warn, got %q", stderr.String())
		}
		data, err := os.ReadFile(filepath.Join(dir, "cv.pdf"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "/FontFile2") {
			t.Error("PDF does not embed the TrueType fonts")
		}
	})

	t.Run("invalid resume", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "bad.yaml", "summary: no title\n")
		env, _, stderr := testEnv(nil)

		if code := runRenderCmd([]string{"--no-custom-fonts", input}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "invalid resume file") || !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		cfg := writeFile(t, dir, "conf.yaml", "templates:\n  default:\n    fonts:\n      - family: Lato\n")
		env, _, stderr := testEnv(nil)

		if code := runRenderCmd([]string{"-c", cfg, input}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d, stderr: %s", code, ExitUsage, stderr.String())
		}
	})

	t.Run("broken custom template fails to start", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		tmplDir := filepath.Join(dir, "tmpl")
		writeFile(t, tmplDir, "default.md.tmpl", "# {{ .Heading ")
		env, _, stderr := testEnv(nil)

		if code := runRenderCmd([]string{"--no-custom-fonts", "--template-dir", tmplDir, input}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d, stderr: %s", code, ExitUsage, stderr.String())
		}
	})

	t.Run("template execution failure is a render failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "jane.yaml", sampleResumeYAML)
		tmplDir := filepath.Join(dir, "tmpl")
		writeFile(t, tmplDir, "minimal.md.tmpl", "# {{ .NoSuchField }}\n")
		env, _, stderr := testEnv(nil)

		args := []string{"--no-custom-fonts", "--template-dir", tmplDir, "-t", "minimal", input}
		if code := runRenderCmd(args, env); code != ExitRender {
			t.Errorf("exit = %d, want %d, stderr: %s", code, ExitRender, stderr.String())
		}
		if !strings.Contains(stderr.String(), "retry with --template default") {
			t.Errorf("stderr missing render hint: %q", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRenderOutputPath - Output path resolution
// ---------------------------------------------------------------------------

func TestRenderOutputPath(t *testing.T) {
	t.Parallel()

	existing := t.TempDir()

	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{name: "default next to input", output: "", input: filepath.Join("in", "a.yaml"), want: filepath.Join("in", "Jane-Doe.pdf")},
		{name: "explicit file", output: filepath.Join("out", "cv.pdf"), input: "a.yaml", want: filepath.Join("out", "cv.pdf")},
		{name: "trailing separator", output: "out/", input: "a.yaml", want: filepath.Join("out", "Jane-Doe.pdf")},
		{name: "existing directory", output: existing, input: "a.yaml", want: filepath.Join(existing, "Jane-Doe.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := renderOutputPath(tt.output, tt.input, "Jane-Doe.pdf"); got != tt.want {
				t.Errorf("renderOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteOutput_Unwritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := writeFile(t, dir, "file", "x")

	err := writeOutput(filepath.Join(blocker, "sub", "cv.pdf"), []byte("%PDF-"))
	if exitCodeFor(err) != ExitIO {
		t.Errorf("writeOutput() error = %v, want an I/O error", err)
	}
}
