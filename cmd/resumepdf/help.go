package main

import (
	"fmt"
	"io"
)

// runHelp prints help for a command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "batch":
		printBatchUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: resumepdf version")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumepdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a resume file to PDF")
	fmt.Fprintln(w, "  batch      Render many resume files in parallel")
	fmt.Fprintln(w, "  templates  List available templates")
	fmt.Fprintln(w, "  doctor     Check fonts, templates and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'resumepdf help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --font-path <dir>     Directory holding the template font files")
	fmt.Fprintln(w, "      --no-custom-fonts     Use builtin PDF fonts only")
	fmt.Fprintln(w, "      --template-dir <dir>  Directory of <id>.md.tmpl overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  RESUMEPDF_CONFIG, RESUMEPDF_FONT_PATH, RESUMEPDF_CUSTOM_FONTS,")
	fmt.Fprintln(w, "  RESUMEPDF_TEMPLATE_DIR, RESUMEPDF_TEMPLATE, RESUMEPDF_OUTPUT_DIR,")
	fmt.Fprintln(w, "  RESUMEPDF_WORKERS, RESUMEPDF_LOG_FORMAT (console, json)")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumepdf render [flags] <resume.yaml>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a YAML or JSON resume to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --template <id>       Template: default, modern, professional, minimal, creative")
	fmt.Fprintln(w, "                            Unknown names render with default")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: <title>.pdf next to input)")
	fmt.Fprintln(w, "      --markup              Also write the composed markup (.md)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 general, 2 usage/config/input, 3 I/O, 4 render failure")
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumepdf batch [flags] <resume.yaml|dir>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render resumes in parallel. Directories are scanned for .yaml, .yml and .json files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --template <id>       Template for every resume")
	fmt.Fprintln(w, "  -o, --output-dir <dir>    Output directory (default: next to each input)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --markup              Also write the composed markup (.md)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumepdf templates [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List configured templates with their markup source and primary font.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resumepdf doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report font resolution per template and environment checks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --font-path <dir>     Directory holding the template font files")
	fmt.Fprintln(w, "      --no-custom-fonts     Use builtin PDF fonts only")
	fmt.Fprintln(w, "      --template-dir <dir>  Directory of <id>.md.tmpl overrides")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
}
