package main

import (
	"path/filepath"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to "+target)
	requireExists(t, target, true)

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := env.run(t, "", "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout, "Config path: "+env.configPath)
	requireContains(t, stdout, "Watch directory: "+env.cfg.Paths.WatchDir)
	requireContains(t, stdout, "Configuration valid")
	requireNotContains(t, stdout, "defaults were used")
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := env.run(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, stdout, "# source: "+env.configPath)
	requireContains(t, stdout, "[paths]")
	requireContains(t, stdout, env.cfg.Paths.WatchDir)
	requireContains(t, stdout, "lookback_hours = 24")
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Scan.LookbackHours = -1
	path := filepath.Join(env.baseDir, "config.toml")
	data, err := env.cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, data)

	if _, _, err := env.run(t, "", "scan"); err == nil {
		t.Fatal("expected negative lookback to be rejected")
	}
}
