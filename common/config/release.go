package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"opencsg.com/csghub-release/common/errorx"
)

const DefaultProfileName = "latest"

// Profile is one way of publishing a release: the script to run and
// whether the result is a prerelease.
type Profile struct {
	Name       string `yaml:"name" json:"name" validate:"required"`
	Use        string `yaml:"use" json:"use" validate:"required"`
	Prerelease bool   `yaml:"prerelease" json:"prerelease"`
}

type ReleaseConfig struct {
	Profiles []Profile `yaml:"profiles" json:"profiles" validate:"required,min=1,unique=Name,dive"`
}

var validate = validator.New()

// LoadReleaseConfig reads the release config file. JSON is a subset of YAML,
// so both release.config.json and a YAML file decode the same way.
func LoadReleaseConfig(path string) (*ReleaseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorx.InvalidConfig(fmt.Errorf("read release config: %w", err), errorx.Ctx().Set("path", path))
	}
	return ParseReleaseConfig(data)
}

func ParseReleaseConfig(data []byte) (*ReleaseConfig, error) {
	var cfg ReleaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errorx.InvalidConfig(fmt.Errorf("decode release config: %w", err), nil)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, errorx.InvalidConfig(fmt.Errorf("validate release config: %w", err), nil)
	}
	return &cfg, nil
}

func (c *ReleaseConfig) Profile(name string) (*Profile, error) {
	if name == "" {
		name = DefaultProfileName
	}
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, errorx.ProfileNotFound(errorx.Ctx().Set("profile", name))
}
