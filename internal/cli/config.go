package cli

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jarinstall/pkg/errors"
	"github.com/matzehuels/jarinstall/pkg/infer"
	"github.com/matzehuels/jarinstall/pkg/install"
	"github.com/matzehuels/jarinstall/pkg/reconcile"
)

// ConfigFileName is looked up in the working directory when --config is unset.
const ConfigFileName = "jarinstall.toml"

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, ErrConfigNotFound).
var ErrConfigNotFound = stderrors.New("config file not found")

// Config is the contents of jarinstall.toml.
type Config struct {
	StagingDir string          `toml:"staging_dir"`
	Maven      MavenConfig     `toml:"maven"`
	Inference  InferenceConfig `toml:"inference"`
}

// MavenConfig configures the install command.
type MavenConfig struct {
	Executable string   `toml:"executable"`
	Plugin     string   `toml:"plugin"`
	Flags      []string `toml:"flags"`
	JVMFlags   []string `toml:"jvm_flags"`
}

// InferenceConfig tunes the path commonality heuristic.
type InferenceConfig struct {
	CommonalityThreshold float64 `toml:"commonality_threshold"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		StagingDir: reconcile.DefaultStagingDir,
		Maven: MavenConfig{
			Executable: install.DefaultExecutable,
			Plugin:     install.DefaultPlugin,
			JVMFlags:   append([]string{}, install.DefaultJVMFlags...),
		},
		Inference: InferenceConfig{CommonalityThreshold: infer.DefaultThreshold},
	}
}

// LoadConfig reads path on top of the defaults. Unknown keys and an out of
// range threshold are rejected with ErrCodeInvalidConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := errors.ValidatePath(cfg.StagingDir); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: staging_dir", path)
	}
	if t := cfg.Inference.CommonalityThreshold; t <= 0 || t > 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: commonality_threshold %v is outside (0, 1]", path, t)
	}
	return cfg, nil
}

// loadConfig resolves the --config flag. A missing default file yields the
// defaults; a missing explicit file is an error.
func (c *CLI) loadConfig() (*Config, error) {
	path := c.configPath
	if path == "" {
		path = ConfigFileName
	}
	cfg, err := LoadConfig(path)
	if stderrors.Is(err, ErrConfigNotFound) {
		if c.configPath == "" {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// mavenOptions converts the config into installer options.
func (cfg *Config) mavenOptions() install.Options {
	return install.Options{
		Executable: cfg.Maven.Executable,
		Plugin:     cfg.Maven.Plugin,
		Flags:      cfg.Maven.Flags,
		JVMFlags:   cfg.Maven.JVMFlags,
	}
}
