package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	"github.com/mcuadros/go-defaults"
	"github.com/naoina/toml"
	"github.com/sethvargo/go-envconfig"
)

var configFile = ""

type Config struct {
	// directory of the repository being released, defaults to the current directory
	WorkDir           string `env:"RELEASE_WORK_DIR" default:"."`
	ReleaseConfigFile string `env:"RELEASE_CONFIG_FILE" default:"release.config.json"`
	ManifestFile      string `env:"RELEASE_MANIFEST_FILE" default:"package.json"`

	GitHub struct {
		Token             string  `env:"GITHUB_TOKEN"`
		APIURL            string  `env:"RELEASE_GITHUB_API_URL" default:"https://api.github.com"`
		RetryCount        uint    `env:"RELEASE_GITHUB_RETRY_COUNT" default:"3"`
		RetryDelayMillis  int     `env:"RELEASE_GITHUB_RETRY_DELAY_MILLIS" default:"200"`
		// shared by REST and GraphQL calls, 0 means unlimited
		RequestsPerSecond float64 `env:"RELEASE_GITHUB_REQUESTS_PER_SECOND" default:"10"`
	}

	Git struct {
		Remote string `env:"RELEASE_GIT_REMOTE" default:"origin"`
	}

	Log struct {
		// optional file every log record is copied to, in addition to stdout
		File string `env:"RELEASE_LOG_FILE"`
	}
}

// ManifestPath resolves ManifestFile against WorkDir.
func (c *Config) ManifestPath() string {
	return c.resolve(c.ManifestFile)
}

func (c *Config) ReleaseConfigPath() string {
	return c.resolve(c.ReleaseConfigFile)
}

func (c *Config) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.WorkDir, file)
}

func SetConfigFile(file string) {
	configFile = file
}

func LoadConfig() (*Config, error) {
	defer slog.Debug("end load config")
	slog.Debug("start load config")
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	toml.DefaultConfig.MissingField = func(typ reflect.Type, key string) error {
		return nil
	}

	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		err = toml.NewDecoder(f).Decode(cfg)
		if err != nil {
			return nil, err
		}
	}

	// Environment always wins over the config file, and the file wins over the default tags.
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:           cfg,
		DefaultOverwrite: true,
	})
	return cfg, err
}
