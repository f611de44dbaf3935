// dune-install bootstraps the dune binary distribution: it resolves
// the host platform, downloads and verifies the release archive,
// unpacks it into a user-chosen install root, and wires up shell
// integration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Interrupts cancel in-flight transfers through the context, so
	// the scoped working directory is still reaped on ^C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dune-install <version>",
		Short:   "Install the dune binary distribution",
		Long: `dune-install downloads the prebuilt dune distribution for this machine,
unpacks it into an install root of your choice, and adds a loader line
to your shell configuration so dune is available in new sessions.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				// Wrong arity is a graceful exit, not a failure.
				fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s\n", cmd.UseLine())
				return nil
			}
			return run(cmd.Context(), args[0])
		},
	}
	cmd.SetVersionTemplate("dune-install {{.Version}}\n")
	return cmd
}
