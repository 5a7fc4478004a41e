package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is an optional YAML file with the same settings as the command line.
type Profile struct {
	// Include lists networks to include. When no network is included anywhere, 0.0.0.0/0 is used.
	Include []string `yaml:"include"`
	// Exclude lists networks to exclude.
	Exclude []string `yaml:"exclude"`
	// IncludeOverride lists networks included even if they are part of an excluded network.
	IncludeOverride []string `yaml:"includeOverride"`

	ExcludePrivateIPv4Ranges bool `yaml:"excludePrivateIPv4Ranges"`
	ExcludePrivateIPv6Ranges bool `yaml:"excludePrivateIPv6Ranges"`

	LogLevel string `yaml:"logLevel"`
	Format   string `yaml:"format"`
}

// LoadProfile reads and unmarshals the profile from the specified YAML file path.
func LoadProfile(filePath string) (*Profile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", filePath, err)
	}

	var profile Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// an empty profile decodes to io.EOF and means no settings
	if err = dec.Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", filePath, err)
	}

	return &profile, nil
}
