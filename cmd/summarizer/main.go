package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"todosummary/internal/app"
	"todosummary/internal/config"

	"github.com/spf13/cobra"
)

var Version = "dev"

// errRunFailed is returned after the outcome was already printed.
var errRunFailed = errors.New("summary run failed")

func main() {
	rootCmd := runCmd()
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "summarizer",
		Short:         "Summarize pending todos and post the summary once",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			a, err := bootstrap(ctx, cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome := a.Service.Run(ctx)
			if outcome.Failed() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+outcome.Message)
				return errRunFailed
			}

			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			return nil
		},
	}

	cmd.PersistentFlags().StringP("env-file", "e", "", "Load environment from this file instead of .env")
	cmd.Flags().Duration("timeout", 0, "Deadline for the whole run (0 disables)")

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent runs from the run log",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			failed, _ := cmd.Flags().GetBool("failed")

			a, err := bootstrap(cmd.Context(), cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Runs == nil {
				return errors.New("REDIS_URL is not set, no run log available")
			}

			get := a.Runs.GetRuns
			if failed {
				get = a.Runs.GetFailedRuns
			}

			runs, err := get(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %-10s  %2d items  %s/%s  %s\n",
					r.StartedAt.Format(time.RFC3339), r.Status, r.ItemCount, r.Summarizer, r.Notifier, r.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum runs")
	cmd.Flags().Bool("failed", false, "Only failed runs")

	return cmd
}

func bootstrap(ctx context.Context, cmd *cobra.Command, validate bool) (*app.App, error) {
	var envFiles []string
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		envFiles = append(envFiles, envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	return app.New(ctx, cfg, app.NewLogger(cfg.LogLevel))
}
