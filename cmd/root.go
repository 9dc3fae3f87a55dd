package cmd

import (
	"os"

	"github.com/dnsvantage/dnsvantage/config"
	"github.com/dnsvantage/dnsvantage/log"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var configPath string

// NewRootCommand creates a new root command instance
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "dnsvantage",
		Short: "dnsvantage evaluates the DNS and email-authentication posture of a domain",
		Long: `dnsvantage queries a domain from its authoritative nameservers and from
a set of public recursive resolvers and reports how consistent the
delegation, DNSSEC, MX, SPF and DMARC setup looks across them.`,
		SilenceUsage: true,
	}

	c.PersistentFlags().StringVarP(&configPath, "config", "c", "./dnsvantage.yml", "path to config file")

	c.AddCommand(
		newCheckCommand(),
		newVersionCommand(),
	)

	return c
}

// loadConfig reads the configuration; the file is only mandatory when
// the flag was set explicitly.
func loadConfig(c *cobra.Command) (config.Config, error) {
	cfg, err := config.NewConfig(configPath, c.Flags().Changed("config"))
	if err != nil {
		return cfg, err
	}

	log.ConfigureLogger(cfg.Log)

	return cfg, nil
}

// Execute runs the root command and exits non zero on configuration or
// usage errors.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
