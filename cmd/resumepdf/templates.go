package main

import (
	"errors"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	flag "github.com/spf13/pflag"

	resumepdf "github.com/alnah/go-resumepdf"
)

// runTemplatesCmd lists the configured templates.
func runTemplatesCmd(args []string, env *Environment) int {
	common, fonts, err := parseTemplatesFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		if errors.Is(err, ErrUsage) {
			printError(env.Stderr, err)
		}
		return ExitUsage
	}

	sess, err := newSession(*common, *fonts, env)
	if err != nil {
		printError(env.Stderr, err)
		return exitCodeFor(err)
	}
	defer sess.close()

	printTemplates(env.Stdout, sess.conv.Registry())
	return ExitSuccess
}

// printTemplates writes one row per template, sorted by identifier.
func printTemplates(w io.Writer, reg *resumepdf.Registry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Template", "Source", "Primary font", "Fonts"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, id := range reg.Templates() {
		d := reg.Lookup(id)
		primary := "-"
		if p, ok := d.Primary(); ok {
			primary = p.Family
		}
		table.Append([]string{id, d.Source, primary, strconv.Itoa(len(d.Fonts))})
	}
	table.Render()
}
