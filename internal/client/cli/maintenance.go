package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/records"
	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("refusing to erase the records store without --yes")

// NewRecordsCommand lists the keys held by the records store. Values are
// never printed; they may hold the session token or password hashes.
func NewRecordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "records",
		Short:              "List the stored record keys",
		Long:               "List the keys held by the records store with their sizes.\n\n" + configUsage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			if rest := flagx.Remaining(args, config.Owned); len(rest) > 0 {
				return fmt.Errorf("unknown arguments: %v", rest)
			}

			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			return listRecords(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

// NewResetCommand erases every record: accounts, session and posts.
func NewResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase all stored data",
		Long: "Erase every record: accounts, the session and all posts.\n\n" +
			"  --yes   confirm the erase\n\n" + configUsage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}

			yes, err := parseResetOptions(flagx.Remaining(args, config.Owned))
			if err != nil {
				return err
			}
			if !yes {
				return errResetNotConfirmed
			}

			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			return resetRecords(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func parseResetOptions(args []string) (bool, error) {
	var yes bool

	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&yes, "yes", false, "confirm the erase")

	if err := fs.Parse(args); err != nil {
		return false, err
	}
	if fs.NArg() > 0 {
		return false, fmt.Errorf("unknown arguments: %v", fs.Args())
	}
	return yes, nil
}

func listRecords(ctx context.Context, cfg *config.Config, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, closeFn, err := records.Open(ctx, cfg.RecordsOptions())
	if err != nil {
		return err
	}
	defer closeFn()

	all, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tBYTES")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%d\n", k, len(all[k]))
	}
	return tw.Flush()
}

func resetRecords(ctx context.Context, cfg *config.Config, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, closeFn, err := records.Open(ctx, cfg.RecordsOptions())
	if err != nil {
		return err
	}
	defer closeFn()

	if err := repo.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "All records erased.")
	return nil
}
