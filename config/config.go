package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dnsvantage/dnsvantage/log"
	"github.com/dnsvantage/dnsvantage/util"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"
)

// Config is the application configuration. All values have defaults, a
// configuration file is optional.
type Config struct {
	Log   log.Config  `yaml:"log"`
	Check CheckConfig `yaml:"check"`
}

// CheckConfig configures one posture evaluation run.
type CheckConfig struct {
	// DKIMSelectors are the selectors probed under <selector>._domainkey.
	DKIMSelectors []string `yaml:"dkimSelectors" default:"[\"default\", \"selector1\"]"`

	// AuthoritativeServers overrides the nameserver list to inspect.
	// Empty means auto-discovery via the domain's NS records.
	AuthoritativeServers []string `yaml:"authoritativeServers"`

	// QueryTimeoutSeconds bounds every single DNS query.
	QueryTimeoutSeconds uint `yaml:"queryTimeoutSeconds" default:"4"`

	// FanOut bounds how many servers/resolvers/targets are queried at once.
	FanOut uint `yaml:"fanOut" default:"8"`

	// IntervalSeconds repeats the whole evaluation; 0 means a single run.
	IntervalSeconds uint `yaml:"intervalSeconds" default:"0"`
}

// NewConfig creates new config with default values. If path points to an
// existing file, its values are applied on top; a missing file is only an
// error if mandatory is set.
func NewConfig(path string, mandatory bool) (Config, error) {
	cfg := Config{}
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("can't apply default values: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mandatory {
			return cfg, cfg.validate()
		}

		return cfg, fmt.Errorf("can't read config file '%s': %w", path, err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("wrong file structure: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Check.FanOut == 0 {
		return errors.New("fanOut must be at least 1")
	}

	if c.Check.QueryTimeoutSeconds == 0 {
		return errors.New("queryTimeoutSeconds must be at least 1")
	}

	if len(c.Check.DKIMSelectors) == 0 {
		return errors.New("at least one DKIM selector is required")
	}

	for _, s := range c.Check.AuthoritativeServers {
		if !util.IsValidHostname(s) {
			return fmt.Errorf("'%s' is not a valid nameserver name", s)
		}
	}

	return nil
}
