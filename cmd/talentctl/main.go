// Command talentctl drives a running talentmatch server: it generates synthetic
// datasets, loads them and prints ranked matches.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/talentmatch/internal/client"
	"github.com/okian/talentmatch/pkg/logger"
)

const app = "talentctl"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	baseURL   string
	timeout   time.Duration
	retries   int
	debug     bool
	logFormat string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           app,
		Short:         app + " generates, loads and queries talentmatch datasets",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithFormat(opts.logFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if opts.debug {
				return logger.SetLevelString("debug")
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.baseURL, "url", "u", "http://localhost:4000", "base URL of the talentmatch server")
	flags.DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "HTTP request timeout")
	flags.IntVar(&opts.retries, "retries", 2, "retries for failed or throttled calls")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newGenerateCmd(),
		newLoadCmd(opts),
		newMatchesCmd(opts),
	)
	return root
}

// newClient builds an API client from the persistent flags.
func (o *rootOptions) newClient(extra ...client.Option) *client.Client {
	opts := []client.Option{
		client.WithTimeout(o.timeout),
		client.WithRetries(o.retries),
		client.WithLogger(logger.Named(app)),
	}
	return client.New(o.baseURL, append(opts, extra...)...)
}
