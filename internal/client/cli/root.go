package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dmitrijs2005/gophblog/internal/buildinfo"
	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/posts"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/records"
	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/spf13/cobra"
)

const configUsage = `Configuration flags (accepted by every command):
  -c, -config string   JSON config file
  -s string            storage driver: sqlite, postgres, bolt, s3, memory
  -d string            sqlite path or postgres DSN
  -b string            bolt file path
  -s3-bucket, -s3-prefix, -s3-region, -s3-endpoint string
  -auth-delay, -fetch-delay duration
  -t duration          session token lifetime, 0 for no expiry
  -demo                accept the demo/password login
  -l string            log level (trace, debug, info, warn, error, disabled)
  -log string          log backend (slog, zerolog)`

// startREPL is swapped in tests so the root command can run without a terminal.
var startREPL = func(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

// NewRootCommand creates the gophblog command tree. Without a subcommand it
// starts the REPL.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "gophblog",
		Short:              "GophBlog - a terminal blog",
		Long:               "A small blogging client: sign up, log in and publish posts from the terminal.\n\n" + configUsage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE:               runREPLCommand,
	}

	cmd.AddCommand(NewREPLCommand())
	cmd.AddCommand(NewPostsCommand())
	cmd.AddCommand(NewRecordsCommand())
	cmd.AddCommand(NewResetCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewREPLCommand starts the interactive session.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "repl",
		Short:              "Start the interactive session (default)",
		Long:               "Start the interactive session.\n\n" + configUsage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               runREPLCommand,
	}
}

// PostsOptions holds the flags of the posts command.
type PostsOptions struct {
	Format string
	Author string
}

// NewPostsCommand prints the post collection and exits.
func NewPostsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "Print all posts",
		Long: "Print all posts, newest first.\n\n" +
			"  --format string   output format (text|json|yaml) (default \"text\")\n" +
			"  --author string   only posts by this author\n\n" + configUsage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}

			opts, err := parsePostsOptions(flagx.Remaining(args, config.Owned))
			if err != nil {
				return err
			}

			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogBackend, cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return printPosts(cmd.Context(), cfg, log, opts, cmd.OutOrStdout())
		},
	}
}

// NewVersionCommand prints build information.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func runREPLCommand(cmd *cobra.Command, args []string) error {
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
	log, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return startREPL(ctx, cfg, log)
}

func wantsHelp(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-h" || a == "--help" || a == "-help"
	})
}

// loadConfig turns the panics of config.LoadConfig into errors.
func loadConfig(args []string) (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid configuration: %v", r)
		}
	}()
	return config.LoadConfig(args), nil
}

func parsePostsOptions(args []string) (PostsOptions, error) {
	opts := PostsOptions{}

	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.Format, "format", FormatText, "output format (text|json|yaml)")
	fs.StringVar(&opts.Author, "author", "", "only posts by this author")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unknown arguments: %v", fs.Args())
	}
	switch opts.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return opts, fmt.Errorf("invalid format %q: must be one of text, json, yaml", opts.Format)
	}
	return opts, nil
}

func printPosts(ctx context.Context, cfg *config.Config, log logging.Logger, opts PostsOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repo, closeFn, err := records.Open(ctx, cfg.RecordsOptions())
	if err != nil {
		return err
	}
	defer closeFn()

	store := posts.New(repo, posts.Options{Delay: cfg.FetchDelay, Logger: log})
	if err := store.Fetch(ctx); err != nil {
		return err
	}

	list := store.State().Posts
	if opts.Author != "" {
		list = models.FilterByAuthor(list, opts.Author)
	}
	return WritePosts(w, list, opts.Format)
}
