package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-txt2epub/internal/config"
	"github.com/alnah/go-txt2epub/internal/pipeline"
)

// versionProbeTimeout bounds each "<tool> --version" call.
const versionProbeTimeout = 5 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string     `json:"status"` // "ready", "warnings", "errors"
	Publishers []toolInfo `json:"publishers"`
	Env        envInfo    `json:"environment"`
	System     systemInfo `json:"system"`
	Warnings   []string   `json:"warnings,omitempty"`
	Errors     []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one publisher executable.
type toolInfo struct {
	Backend string `json:"backend"`
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds platform and CI detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json   bool
	config string
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	fs.StringVarP(&f.config, "config", "c", "", "config file whose markup settings are checked")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, fmt.Errorf("%w: %v", ErrUsage, err))
	}

	result := runDoctor(ctx, f.config, env)

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
func runDoctor(ctx context.Context, configFlag string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	markup := doctorMarkup(result, configFlag, env)
	checkPublishers(ctx, result, markup, env)
	checkEnvironment(result, env)
	checkSystem(result, env)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// doctorMarkup resolves the markup settings convert would use from the
// config file and TXT2EPUB_* variables. A config that fails to load is
// reported and defaults are checked instead.
func doctorMarkup(result *doctorResult, configFlag string, env *Environment) config.MarkupConfig {
	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(configFlag, envCfg.ConfigPath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		cfg = config.DefaultConfig()
	}
	applyEnvConfig(envCfg, cfg)
	return cfg.Markup
}

// checkPublishers looks for each backend's executable and its version.
// A configured custom command must resolve; otherwise missing tools are
// warnings since plain text and images still convert.
func checkPublishers(ctx context.Context, result *doctorResult, markup config.MarkupConfig, env *Environment) {
	type probe struct {
		label   string
		backend string
		command string
	}
	probes := []probe{
		{label: pipeline.BackendDocutils, backend: pipeline.BackendDocutils},
		{label: pipeline.BackendPandoc, backend: pipeline.BackendPandoc},
	}
	custom := markup.Command
	if custom != "" {
		probes = append(probes, probe{label: "custom", backend: markup.Backend, command: custom})
	}

	var tools []toolInfo
	anyFound := false
	for _, p := range probes {
		t, err := probeTool(ctx, p.backend, p.command, env)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		t.Backend = p.label
		tools = append(tools, t)
		anyFound = anyFound || t.Found
	}
	result.Publishers = tools

	if custom != "" && len(tools) == len(probes) && !tools[len(tools)-1].Found {
		result.Errors = append(result.Errors,
			fmt.Sprintf("markup command %q not found", custom))
	}
	if !anyFound {
		result.Warnings = append(result.Warnings,
			"No reStructuredText publisher found; .rst sources will fail. Install docutils or pandoc")
	}
}

// probeTool resolves the publisher's command the way convert would and
// records its version line.
func probeTool(ctx context.Context, backend, command string, env *Environment) (toolInfo, error) {
	pub, err := pipeline.NewCommandPublisher(backend, command)
	if err != nil {
		return toolInfo{}, err
	}
	pub.Resolve = env.LookPath

	t := toolInfo{Command: pub.Command}
	path, err := pub.LookPath()
	if err != nil {
		return t, nil
	}
	t.Found = true
	t.Path = path

	if env.Runner == nil {
		return t, nil
	}
	probeCtx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()
	stdout, _, err := env.Runner.Run(probeCtx, nil, path, "--version")
	if err != nil {
		return t, nil
	}
	if line, _, _ := strings.Cut(strings.TrimSpace(stdout), "\n"); line != "" {
		t.Version = line
	}
	return t, nil
}

// checkEnvironment detects CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies the temp directory, where work areas live, is writable.
func checkSystem(result *doctorResult, env *Environment) {
	tmpDir := env.TempDir()
	result.System.TempDir = tmpDir

	testFile := filepath.Join(tmpDir, fmt.Sprintf("txt2epub-doctor-%d", os.Getpid()))
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "txt2epub doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "reStructuredText publishers")
	for _, t := range r.Publishers {
		if !t.Found {
			fmt.Fprintf(w, "  [--] %s (%s): not found\n", t.Backend, t.Command)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s: %s\n", t.Backend, t.Path)
		if t.Version != "" {
			fmt.Fprintf(w, "       %s\n", t.Version)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  [OK] Temp directory: %s writable\n", r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Temp directory: %s not writable\n", r.System.TempDir)
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
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
