package main

// Notes:
// - runMain: we test dispatch and exit codes. Rendering itself is covered in
//   render_test.go and batch_test.go with temp files.
// - main() is not tested: it only wires automaxprocs and os.Exit.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"resumepdf"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: resumepdf"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"resumepdf", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"resumepdf dev"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"resumepdf", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: resumepdf", "Commands:", "render", "batch", "doctor"},
		},
		{
			name:         "help render shows render help",
			args:         []string{"resumepdf", "help", "render"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: resumepdf render", "--template", "--markup"},
		},
		{
			name:         "help batch shows batch help",
			args:         []string{"resumepdf", "help", "batch"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: resumepdf batch", "--workers"},
		},
		{
			name:         "help unknown command exits with ExitUsage",
			args:         []string{"resumepdf", "help", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: nope"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"resumepdf", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "render without input exits with ExitUsage",
			args:         []string{"resumepdf", "render"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"exactly one resume file"},
		},
		{
			name:         "render with unknown flag exits with ExitUsage",
			args:         []string{"resumepdf", "render", "--colour", "x.yaml"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name:         "render --help exits 0",
			args:         []string{"resumepdf", "render", "--help"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: resumepdf render"},
		},
		{
			name:         "render missing file exits with ExitIO",
			args:         []string{"resumepdf", "render", "--no-custom-fonts", filepath.Join("testdata", "missing.yaml")},
			wantCode:     ExitIO,
			wantInStderr: []string{"failed to read resume file"},
		},
		{
			name:         "render wrong extension exits with ExitUsage",
			args:         []string{"resumepdf", "render", "--no-custom-fonts", "resume.txt"},
			wantCode:     ExitUsage,
			wantInStderr: []string{".yaml, .yml or .json"},
		},
		{
			name:         "batch without input exits with ExitIO",
			args:         []string{"resumepdf", "batch", "--no-custom-fonts"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no input specified"},
		},
		{
			name:         "batch with too many workers exits with ExitUsage",
			args:         []string{"resumepdf", "batch", "-w", "99", "dir"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid worker count"},
		},
		{
			name:         "templates with extra args exits with ExitUsage",
			args:         []string{"resumepdf", "templates", "extra"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unexpected arguments: extra"},
		},
		{
			name:         "missing named config exits with ExitUsage",
			args:         []string{"resumepdf", "templates", "--config", "no-such-config-name"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "hint:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q, got:\n%s", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr missing %q, got:\n%s", want, stderr.String())
				}
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{args: []string{"render", "-v", "a.yaml"}, want: true},
		{args: []string{"batch", "--verbose"}, want: true},
		{args: []string{"render", "a.yaml"}, want: false},
		{args: nil, want: false},
	}
	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
