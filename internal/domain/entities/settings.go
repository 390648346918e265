package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings is the top-level configuration for mvnoffline. Every value can be
// overridden by a command-line flag.
type Settings struct {
	Maven      MavenSettings `yaml:"maven"`
	SourceRepo string        `yaml:"source_repo"`
	TargetRepo string        `yaml:"target_repo"`
	Workers    int           `yaml:"workers"`
	Verify     bool          `yaml:"verify"`
	Clean      CleanSettings `yaml:"clean"`
}

// MavenSettings configures the external build tool invocation.
type MavenSettings struct {
	// Command overrides the Maven executable. Empty means probe the
	// platform candidates (mvn, mvn.cmd, mvn.bat).
	Command string `yaml:"command"`
}

// CleanSettings configures the repository cache cleaner.
type CleanSettings struct {
	RemoveEmptyDirs bool `yaml:"remove_empty_dirs"`
}

const defaultWorkers = 4

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Workers: defaultWorkers,
		Clean:   CleanSettings{RemoveEmptyDirs: true},
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding ${ENV_VAR}
// placeholders. Absent keys keep their defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	cfg := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal([]byte(expanded), cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}
	locations = append(locations, "/etc/mvnoffline")

	patterns := []string{
		".mvnoffline.yaml",
		".mvnoffline.yml",
		"mvnoffline.yaml",
		"mvnoffline.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// validate checks for out-of-range configuration values.
func validate(cfg *Settings) error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return nil
}
