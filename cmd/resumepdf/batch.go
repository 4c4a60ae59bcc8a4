package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	resumepdf "github.com/alnah/go-resumepdf"
)

// renderOutcome holds the outcome of a single batch entry.
type renderOutcome struct {
	InputPath  string
	OutputPath string
	Template   string
	Pages      int
	Err        error
}

// runBatchCmd executes the batch command and returns an exit code.
func runBatchCmd(args []string, env *Environment) int {
	f, positional, err := parseBatchFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	outcomes, err := runBatch(ctx, f, positional, env)
	if err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}

	if failed := printResultsWithWriter(outcomes, f.common.quiet, f.common.verbose, env); failed > 0 {
		return exitCodeFor(firstError(outcomes))
	}
	return ExitSuccess
}

// runBatch discovers, loads and renders every input. Per-file failures are
// recorded in the outcomes; only setup failures are returned.
func runBatch(ctx context.Context, f *batchFlags, inputs []string, env *Environment) ([]renderOutcome, error) {
	if err := validateWorkers(f.workers); err != nil {
		return nil, err
	}

	sess, err := newSession(f.common, f.fonts, env)
	if err != nil {
		return nil, err
	}
	defer sess.close()

	outputDir := f.outputDir
	if outputDir == "" {
		outputDir = sess.env.OutputDir
	}
	workers := f.workers
	if workers == 0 {
		workers = sess.env.Workers
	}

	files, err := discoverResumes(inputs, outputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no resume files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}

	tmpl := sess.template(f.template)
	sess.warnUnknownTemplate(tmpl)

	outcomes := make([]renderOutcome, len(files))
	jobs := make([]resumepdf.Job, 0, len(files))
	index := make([]int, 0, len(files))
	for i, file := range files {
		outcomes[i] = renderOutcome{InputPath: file.InputPath, OutputPath: file.OutputPath}
		r, err := loadResume(file.InputPath)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		jobs = append(jobs, resumepdf.Job{Name: file.InputPath, Resume: r, Template: tmpl})
		index = append(index, i)
	}

	for j, jr := range sess.conv.RenderBatch(ctx, jobs, workers) {
		o := &outcomes[index[j]]
		if jr.Err != nil {
			o.Err = jr.Err
			continue
		}
		o.Template, o.Pages = jr.Result.Template, jr.Result.Pages
		o.Err = writeResult(o.OutputPath, jr.Result, f.markup)
	}

	return outcomes, nil
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []renderOutcome) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

func firstError(results []renderOutcome) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResultsWithWriter outputs batch results and returns the failure count.
func printResultsWithWriter(results []renderOutcome, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (template %s, %d pages)\n", r.InputPath, r.OutputPath, r.Template, r.Pages)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
