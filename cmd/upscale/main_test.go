package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"upscale/internal/config"
	"upscale/internal/discovery"
	"upscale/internal/faults"
	"upscale/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	inputDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	for _, key := range []string{config.EnvInstallPath, config.EnvCommand, config.EnvFactor, config.EnvModel} {
		t.Setenv(key, "")
	}
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))

	cfg := testsupport.NewConfig(t, testsupport.WithStubTool(), testsupport.WithWorkers(3))
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	inputDir := filepath.Join(base, "images")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, inputDir: inputDir}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ninstall_dir = %q\nlock_path = %q\n\n[tool]\ncommand = %q\n\n[runner]\nworkers = %d\npoll_interval_ms = %d\n",
		cfg.Paths.InstallDir,
		cfg.Paths.LockPath,
		cfg.Tool.Command,
		cfg.Runner.Workers,
		cfg.Runner.PollIntervalMillis,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func TestRunPrintsOutcomeTables(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFileKB(t, filepath.Join(env.inputDir, "0001_cat_a.png"), 4)
	testsupport.WriteFileKB(t, filepath.Join(env.inputDir, "nested", "0002_cat_b.PNG"), 4)
	testsupport.WriteFileKB(t, filepath.Join(env.inputDir, "0003_fail_c.jpg"), 4)
	testsupport.WriteFileKB(t, filepath.Join(env.inputDir, "notes.txt"), 1)

	out, logs, err := runCLI(t, []string{env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v\nstderr:\n%s", err, logs)
	}
	requireContains(t, out, "Successful upscales")
	requireContains(t, out, "Failed upscales")
	requireContains(t, out, "cat")
	if strings.Contains(out, "Skipped upscales") {
		t.Fatalf("expected no skipped table on first run:\n%s", out)
	}
	requireContains(t, logs, "] runner: upscaling")
	if strings.Contains(out, "upscaling") {
		t.Fatalf("expected logs to stay off stdout:\n%s", out)
	}
	if got := len(testsupport.StubInvocations(t, env.cfg.Paths.InstallDir)); got != 3 {
		t.Fatalf("expected 3 invocations, got %d", got)
	}
	if _, err := os.Stat(env.cfg.Paths.LockPath); !os.IsNotExist(err) {
		t.Fatalf("expected lock file removed after the run, stat err %v", err)
	}

	out, _, err = runCLI(t, []string{env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	requireContains(t, out, "Skipped upscales")
	requireContains(t, out, "Failed upscales")
	if strings.Contains(out, "Successful upscales") {
		t.Fatalf("expected no successes on rerun:\n%s", out)
	}
	// Only the failed item is retried.
	if got := len(testsupport.StubInvocations(t, env.cfg.Paths.InstallDir)); got != 4 {
		t.Fatalf("expected 4 invocations after rerun, got %d", got)
	}
}

func TestRunEmptyDirectoryIsFatal(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFileKB(t, filepath.Join(env.inputDir, "readme.md"), 1)

	out, _, err := runCLI(t, []string{env.inputDir}, env.configPath)
	if !errors.Is(err, discovery.ErrNoInput) || !errors.Is(err, faults.ErrDiscovery) {
		t.Fatalf("expected no-input discovery error, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no tables, got:\n%s", out)
	}
}

func TestRunRejectsInvalidFactorFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"--factor", "16k", env.inputDir}, env.configPath)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{filepath.Join(env.inputDir, "absent")}, env.configPath)
	if !errors.Is(err, faults.ErrEnvironment) {
		t.Fatalf("expected environment error, got %v", err)
	}
	requireContains(t, err.Error(), "does not exist")
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFileKB(t, filepath.Join(env.inputDir, "0001_dog_a.png"), 2)

	if _, _, err := runCLI(t, []string{"--model", "custom-model", "--factor", "8K", env.inputDir}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.inputDir, "0001_dog_a.custom-model-8k.webp")); err != nil {
		t.Fatalf("expected output named after flag values: %v", err)
	}
	lines := testsupport.StubInvocations(t, env.cfg.Paths.InstallDir)
	if len(lines) != 1 || !strings.Contains(lines[0], "-n custom-model") {
		t.Fatalf("unexpected invocations %v", lines)
	}
}

func TestRootWithoutArgsFails(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, nil, env.configPath)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, err.Error(), "missing directory argument")
	if out != "" {
		t.Fatalf("expected no stdout output, got:\n%s", out)
	}
}

func TestRootHelpFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"--help"}, env.configPath)
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	requireContains(t, out, "upscale [flags] <dir>")
}

func TestInstallReportsPresentTool(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"install"}, env.configPath)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	requireContains(t, out, "already present")
}

func TestRenderErrorLine(t *testing.T) {
	err := faults.Wrap(faults.ErrEnvironment, "preflight", "", "Input directory: missing", nil)
	plain := renderErrorLine(err, false)
	if strings.Contains(plain, "\x1b[") || !strings.HasPrefix(plain, "error: ") {
		t.Fatalf("unexpected plain line %q", plain)
	}
	if colored := renderErrorLine(err, true); !strings.HasPrefix(colored, ansiRed) {
		t.Fatalf("expected red error line, got %q", colored)
	}
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("expected buffers to never be colourized")
	}
}
