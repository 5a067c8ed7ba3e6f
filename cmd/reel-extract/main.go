package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

const usageText = `Usage:
  reel-extract                    # Process default urls.csv
  reel-extract --create-template  # Create enhanced CSV template
  reel-extract --csv <file>       # Use custom CSV file
`

// errUsage means the usage text was printed instead of running anything
var errUsage = errors.New("usage requested")

// runner performs the two things the command can do
type runner interface {
	CreateTemplate() error
	Process(ctx context.Context, csvPath string) error
}

func newRootCmd(r runner, out io.Writer) *cobra.Command {
	var (
		createTemplate bool
		csvPath        string
	)

	printUsage := func() { fmt.Fprint(out, usageText) }

	cmd := &cobra.Command{
		Use:           "reel-extract",
		Short:         "Download reels listed in a CSV file for the multi-uploader",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if createTemplate {
				return r.CreateTemplate()
			}
			if len(args) > 0 {
				printUsage()
				return errUsage
			}
			if cmd.Flags().Changed("csv") {
				if strings.TrimSpace(csvPath) == "" {
					printUsage()
					return errUsage
				}
				return r.Process(cmd.Context(), csvPath)
			}
			return r.Process(cmd.Context(), "")
		},
	}

	cmd.Flags().BoolVar(&createTemplate, "create-template", false, "Create enhanced CSV template")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Use custom CSV file")

	cmd.SetOut(out)
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		printUsage()
		return errUsage
	})
	cmd.SetHelpFunc(func(*cobra.Command, []string) { printUsage() })
	cmd.SetUsageFunc(func(*cobra.Command) error {
		printUsage()
		return nil
	})
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd(&cliRunner{out: os.Stdout}, os.Stdout).ExecuteContext(ctx)
	stop()

	if err != nil && !errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
