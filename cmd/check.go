package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/dnsvantage/dnsvantage/dnsclient"
	"github.com/dnsvantage/dnsvantage/log"
	"github.com/dnsvantage/dnsvantage/posture"
	"github.com/dnsvantage/dnsvantage/report"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "check <domain>",
		Args:  cobra.ExactArgs(1),
		Short: "evaluates the posture of a domain",
		RunE:  runCheck,
	}

	c.Flags().StringSliceP("selector", "s", nil, "DKIM selector to probe (repeatable)")
	c.Flags().StringSlice("ns", nil, "authoritative nameserver override (repeatable)")
	c.Flags().UintP("interval", "i", 0, "repeat the evaluation every n seconds (0 = single run)")
	c.Flags().Uint("timeout", 0, "per query timeout in seconds")

	return c
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if selectors, _ := cmd.Flags().GetStringSlice("selector"); len(selectors) > 0 {
		cfg.Check.DKIMSelectors = selectors
	}

	if servers, _ := cmd.Flags().GetStringSlice("ns"); len(servers) > 0 {
		cfg.Check.AuthoritativeServers = servers
	}

	if interval, _ := cmd.Flags().GetUint("interval"); cmd.Flags().Changed("interval") {
		cfg.Check.IntervalSeconds = interval
	}

	if timeout, _ := cmd.Flags().GetUint("timeout"); timeout > 0 {
		cfg.Check.QueryTimeoutSeconds = timeout
	}

	client := dnsclient.NewClient(time.Duration(cfg.Check.QueryTimeoutSeconds) * time.Second)
	runner := posture.NewRunner(cfg.Check, client)
	renderer := report.NewRenderer(cmd.OutOrStdout())

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runOnce := func() error {
		snapshot, err := runner.Run(ctx, args[0])
		if err != nil {
			return err
		}

		renderer.Render(snapshot)

		return nil
	}

	if err := runOnce(); err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return err
	}

	if cfg.Check.IntervalSeconds == 0 {
		return nil
	}

	interval := time.Duration(cfg.Check.IntervalSeconds) * time.Second
	log.Log().Infof("repeating the evaluation every %s, press ctrl+c to stop",
		durafmt.Parse(interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Log().Info("terminating...")

			return nil
		case <-ticker.C:
			// every tick starts from scratch, nothing survives a run
			if err := runOnce(); err != nil {
				if ctx.Err() != nil {
					return nil
				}

				return err
			}
		}
	}
}
