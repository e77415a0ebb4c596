package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the command line flags so that a project can pin its
// generation settings in a `declgen.yaml` next to its schemas. Flags
// always win over the file.
type Config struct {
	Schemas Schemas  `yaml:"schemas"`
	Output  Output   `yaml:"output"`
	Ignore  []string `yaml:"ignore"`
	Global  string   `yaml:"global"`
}

type Schemas struct {
	Path        string `yaml:"path"`
	BrowserPath string `yaml:"browserPath"`
}

type Output struct {
	Path string `yaml:"path"`
}

func Read(configPath string) (*Config, error) {
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read config file "%s": %w`, configPath, err)
	}

	var config Config
	if err := yaml.Unmarshal(fileData, &config); err != nil {
		return nil, fmt.Errorf(`failed to unmarshal config file "%s": %w`, configPath, err)
	}

	return &config, nil
}
