package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	flag "github.com/spf13/pflag"

	resumepdf "github.com/alnah/go-resumepdf"
	"github.com/alnah/go-resumepdf/internal/fileutil"
	"github.com/alnah/go-resumepdf/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string         `json:"status"` // "ready", "warnings", "errors"
	Config    configInfo     `json:"config"`
	Templates []templateInfo `json:"templates"`
	Env       envInfo        `json:"environment"`
	System    systemInfo     `json:"system"`
	Warnings  []string       `json:"warnings,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

// configInfo describes the effective configuration.
type configInfo struct {
	Path          string `json:"path,omitempty"`
	FontBasePath  string `json:"font_base_path"`
	FontDirExists bool   `json:"font_dir_exists"`
	CustomFonts   bool   `json:"custom_fonts"`
	TemplateDir   string `json:"template_dir,omitempty"`
}

// templateInfo is the font resolution report of one template.
type templateInfo struct {
	ID       string      `json:"id"`
	Source   string      `json:"source"`
	Primary  string      `json:"primary_font"`
	Declared int         `json:"declared"`
	Embedded int         `json:"embedded"`
	Fallback bool        `json:"fallback"`
	Issues   []fontIssue `json:"issues,omitempty"`
}

// fontIssue is a declaration that could not be embedded.
type fontIssue struct {
	Family string `json:"family"`
	File   string `json:"file"`
	Error  string `json:"error"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	f, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		if errors.Is(err, ErrUsage) {
			printError(env.Stderr, err)
		}
		return ExitUsage
	}

	result := runDoctor(f, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(f *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkTemplates(result, f, env)
	checkEnvironment(result, env)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTemplates builds the registry and resolves every template's fonts.
func checkTemplates(result *doctorResult, f *doctorFlags, env *Environment) {
	ec := loadEnvConfig(env.getenv)
	result.Config.Path = f.config
	if result.Config.Path == "" {
		result.Config.Path = ec.ConfigPath
	}

	cfg, err := buildConfig(f.config, f.fonts, ec)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return
	}
	result.Config.FontBasePath = cfg.FontBasePath
	result.Config.FontDirExists = fileutil.DirExists(cfg.FontBasePath)
	result.Config.CustomFonts = cfg.EnableCustomFonts
	result.Config.TemplateDir = cfg.TemplateDir

	conv, err := resumepdf.NewConverter(resumepdf.WithConfig(cfg))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Templates: %v", err))
		return
	}

	if cfg.EnableCustomFonts && !result.Config.FontDirExists {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Font directory %s not found; templates will use builtin fonts", cfg.FontBasePath))
	}

	reg := conv.Registry()
	for _, id := range reg.Templates() {
		d := reg.Lookup(id)
		set := conv.ResolveFonts(id)
		info := templateInfo{
			ID:       id,
			Source:   d.Source,
			Primary:  set.Primary(),
			Declared: len(d.Fonts),
			Embedded: set.Embedded(),
			Fallback: set.Fallback,
		}
		for _, e := range set.Entries {
			if e.Err != nil && !errors.Is(e.Err, resumepdf.ErrCustomFontsDisabled) {
				info.Issues = append(info.Issues, fontIssue{
					Family: e.Declaration.Family,
					File:   e.Declaration.AssetPath,
					Error:  e.Err.Error(),
				})
			}
		}
		result.Templates = append(result.Templates, info)

		switch {
		case !cfg.EnableCustomFonts || len(info.Issues) == 0:
		case info.Fallback:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Template %s: no font could be embedded, using builtin fonts", id))
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Template %s: %d of %d fonts unavailable", id, len(info.Issues), info.Declared))
		}
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Env.Container && result.Config.CustomFonts && !result.Config.FontDirExists {
		result.Warnings = append(result.Warnings,
			"Container detected: mount the font directory or set RESUMEPDF_FONT_PATH")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	if env.getenv("RESUMEPDF_CONTAINER") == "1" {
		return true, "RESUMEPDF_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used by atomic writes is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "resumepdf-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "resumepdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Path != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Config.Path)
	} else {
		fmt.Fprintln(w, "  [OK] Config: built-in defaults")
	}
	if r.Config.FontBasePath != "" {
		if r.Config.FontDirExists {
			fmt.Fprintf(w, "  [OK] Font directory: %s\n", r.Config.FontBasePath)
		} else {
			fmt.Fprintf(w, "  [WARN] Font directory: %s (not found)\n", r.Config.FontBasePath)
		}
	}
	if !r.Config.CustomFonts {
		fmt.Fprintln(w, "  [OK] Custom fonts: disabled (builtin fonts only)")
	}
	if r.Config.TemplateDir != "" {
		fmt.Fprintf(w, "  [OK] Template directory: %s\n", r.Config.TemplateDir)
	}
	fmt.Fprintln(w)

	if len(r.Templates) > 0 {
		fmt.Fprintln(w, "Templates")
		for _, t := range r.Templates {
			tag := "[OK]"
			if r.Config.CustomFonts && len(t.Issues) > 0 {
				tag = "[WARN]"
			}
			fmt.Fprintf(w, "  %s %s (%s): %d/%d fonts embedded, body font %s\n",
				tag, t.ID, t.Source, t.Embedded, t.Declared, t.Primary)
			for _, issue := range t.Issues {
				fmt.Fprintf(w, "         %s %s: %s\n", issue.Family, issue.File, issue.Error)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
