package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	flag "github.com/spf13/pflag"

	resumepdf "github.com/alnah/go-resumepdf"
	"github.com/alnah/go-resumepdf/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "unknown error", err: errors.New("boom"), want: ExitGeneral},
		{name: "context canceled", err: fmt.Errorf("render: %w", errors.New("context canceled")), want: ExitGeneral},

		{name: "render error", err: &resumepdf.RenderError{Stage: resumepdf.StageLayingOut, Err: errors.New("x")}, want: ExitRender},
		{name: "wrapped rendering", err: fmt.Errorf("job: %w", resumepdf.ErrRendering), want: ExitRender},

		{name: "not exist", err: fmt.Errorf("stat: %w", os.ErrNotExist), want: ExitIO},
		{name: "permission", err: os.ErrPermission, want: ExitIO},
		{name: "read resume", err: fmt.Errorf("%w: x", ErrReadResume), want: ExitIO},
		{name: "write output", err: fmt.Errorf("%w: x", ErrWriteOutput), want: ExitIO},
		{name: "no input", err: ErrNoInput, want: ExitIO},

		{name: "usage", err: ErrUsage, want: ExitUsage},
		{name: "help", err: flag.ErrHelp, want: ExitUsage},
		{name: "config not found", err: &config.NotFoundError{Tried: []string{"a.yaml"}}, want: ExitUsage},
		{name: "config parse", err: fmt.Errorf("%w: x", config.ErrConfigParse), want: ExitUsage},
		{name: "config invalid", err: config.ErrConfigInvalid, want: ExitUsage},
		{name: "template config missing", err: fmt.Errorf("%w: %q", resumepdf.ErrTemplateConfigMissing, "modern"), want: ExitUsage},
		{name: "template parse", err: resumepdf.ErrTemplateParse, want: ExitUsage},
		{name: "font declaration", err: resumepdf.ErrInvalidFontDecl, want: ExitUsage},
		{name: "invalid library config", err: resumepdf.ErrInvalidConfig, want: ExitUsage},
		{name: "invalid resume", err: ErrInvalidResume, want: ExitUsage},
		{name: "extension", err: ErrInvalidExtension, want: ExitUsage},
		{name: "workers", err: ErrInvalidWorkerCount, want: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
