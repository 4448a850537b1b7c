// cli — команды headlines: выборка новостей в терминал и HTTP API (serve).
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Форматы вывода.
const (
	formatPretty = "pretty"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

// rootFlags — общие флаги всех команд.
type rootFlags struct {
	configPath string
	format     string
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "headlines",
		Short:        "headlines — news from newsapi.org in your terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch flags.format {
			case formatPretty, formatJSON, formatYAML:
				return nil
			default:
				return fmt.Errorf("unsupported format %q (expected pretty|json|yaml)", flags.format)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&flags.format, "format", formatPretty, "Output format: pretty|json|yaml")

	cmd.AddCommand(
		topCmd(flags),
		searchCmd(flags),
		categoriesCmd(flags),
		countriesCmd(flags),
		serveCmd(flags),
	)

	return cmd
}
