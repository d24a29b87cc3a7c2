package cli

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/jarinstall/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeTestFile(t, path, `
staging_dir = "build/external"

[maven]
executable = "./mvnw"
flags = ["-B", "-q"]

[inference]
commonality_threshold = 0.5
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := DefaultConfig()
	want.StagingDir = "build/external"
	want.Maven.Executable = "./mvnw"
	want.Maven.Flags = []string{"-B", "-q"}
	want.Inference.CommonalityThreshold = 0.5
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "staging_dir = "},
		{"unknown key", "stage_dir = \"x\""},
		{"threshold too high", "[inference]\ncommonality_threshold = 1.5"},
		{"threshold zero", "[inference]\ncommonality_threshold = 0.0"},
		{"empty staging dir", "staging_dir = \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			writeTestFile(t, path, tt.content)

			_, err := LoadConfig(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("LoadConfig() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != ErrConfigNotFound {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestCLILoadConfig(t *testing.T) {
	t.Run("default file missing", func(t *testing.T) {
		chdir(t, t.TempDir())
		cfg, err := testCLI(t, nil).loadConfig()
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
			t.Errorf("loadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("default file present", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		writeTestFile(t, filepath.Join(dir, ConfigFileName), `staging_dir = "vendor-src"`)

		cfg, err := testCLI(t, nil).loadConfig()
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.StagingDir != "vendor-src" {
			t.Errorf("StagingDir = %q, want %q", cfg.StagingDir, "vendor-src")
		}
	})

	t.Run("explicit file missing", func(t *testing.T) {
		c := testCLI(t, nil)
		c.configPath = filepath.Join(t.TempDir(), "nope.toml")
		_, err := c.loadConfig()
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("loadConfig() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
		}
	})
}

func TestMavenOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Maven.Flags = []string{"-o"}

	opts := cfg.mavenOptions()
	if opts.Executable != "mvn" || opts.Flags[0] != "-o" || len(opts.JVMFlags) != 3 {
		t.Errorf("mavenOptions() = %+v", opts)
	}
}
