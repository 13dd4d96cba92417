package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/sortid"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := newConfigFlags()

	root := &cobra.Command{
		Use:           "sortid",
		Short:         "Generate and decode lexicographically sortable identifiers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	flags.register(root.PersistentFlags())

	root.AddCommand(newGenerateCmd(flags))
	root.AddCommand(newDecodeCmd(flags))
	root.AddCommand(newInfoCmd(flags))
	root.AddCommand(newServeCmd(flags))
	return root
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

func newGenerateCmd(flags *configFlags) *cobra.Command {
	var (
		count    int
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)
			gen, err := flags.generator()
			if err != nil {
				logger.Error().Err(err).Msg("failed to build generator")
				return err
			}

			if parallel <= 1 {
				for range count {
					id, err := gen.GenerateContext(cmd.Context())
					if err != nil {
						logger.Error().Err(err).Msg("generation failed")
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}

			// Parallel mode exercises the generator's single critical
			// section from several workers against one instance.
			ids := make([]string, count)
			var next int
			var mu sync.Mutex
			g, ctx := errgroup.WithContext(cmd.Context())
			for range parallel {
				g.Go(func() error {
					for {
						mu.Lock()
						i := next
						next++
						mu.Unlock()
						if i >= count {
							return nil
						}
						id, err := gen.GenerateContext(ctx)
						if err != nil {
							return err
						}
						mu.Lock()
						ids[i] = id
						mu.Unlock()
					}
				})
			}
			if err := g.Wait(); err != nil {
				logger.Error().Err(err).Msg("generation failed")
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers to generate")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "number of concurrent workers")
	return cmd
}

func newDecodeCmd(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>...",
		Short: "Decode identifiers into instant, chrono and suffix fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)
			gen, err := flags.generator()
			if err != nil {
				logger.Error().Err(err).Msg("failed to build generator")
				return err
			}

			for _, id := range args {
				d, err := gen.Decode(id)
				if err != nil {
					logger.Error().Err(err).Str("id", id).Msg("decode failed")
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\ttime=%s\tchrono=%s\tsuffix=%s\n",
					id, d.Time.Format("2006-01-02T15:04:05.000000000Z07:00"), d.Chrono, d.Suffix)
			}
			return nil
		},
	}
}

func newInfoCmd(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the resolved generator configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(flags.logLevel)
			gen, err := flags.generator()
			if err != nil {
				logger.Error().Err(err).Msg("failed to build generator")
				return err
			}
			printInfo(cmd, gen.Info())
			return nil
		},
	}
}

func printInfo(cmd *cobra.Command, info sortid.Info) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Alphabet (%d symbols): %s\n", len(info.Alphabet), info.Alphabet)
	fmt.Fprintf(out, "Total length:          %d symbols\n", info.TotalLength)
	fmt.Fprintf(out, "Timestamp length:      %d symbols\n", info.TimestampLength)
	fmt.Fprintf(out, "Chrono length:         %d symbols\n", info.ChronoLength)
	fmt.Fprintf(out, "Suffix length:         %d symbols\n", info.SuffixLength)
	fmt.Fprintf(out, "Granularity:           %s\n", info.Granularity)
	fmt.Fprintf(out, "Max sortable rate:     %s\n", info.Rate)
	fmt.Fprintf(out, "Start date:            %s\n", info.Start.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(out, "End date:              %s\n", info.End.Format("2006-01-02T15:04:05Z07:00"))
}
