package cli

import (
	"context"
	"io"

	"github.com/alecthomas/kong"
)

const (
	name        = "strs"
	description = "Resolve strings from prioritized tables."
)

// CLI is the top-level command-line interface for strs.
type CLI struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	Table  []string `help:"Table file (JSON or YAML), highest priority first. Repeatable." short:"t" type:"existingfile"`
	Dir    string   `help:"Catalog directory laid out as <domain>/<locale>/strings.{json,yaml}."`
	Domain string   `help:"Catalog domain."`
	Locale []string `help:"Locale preference, most specific first. Repeatable." short:"l"`
	Redis  bool     `help:"Load catalog tables from Redis (REDIS_URL) instead of --dir."`
	Seed   uint64   `help:"Seed for the ? and ! selectors. Zero uses a random seed."`

	Get     Get     `cmd:"" help:"Print the string at KEY."`
	Count   Count   `cmd:"" help:"Print the length of the list at KEY, or -1."`
	Has     Has     `cmd:"" help:"Exit 0 when KEY exists in any table, 1 otherwise."`
	Keys    Keys    `cmd:"" help:"List the children of PARENT (the table roots when empty)."`
	Trace   Trace   `cmd:"" help:"Print per-table provenance for KEY as JSON."`
	Flatten Flatten `cmd:"" help:"List every leaf path with its winning table."`
	Query   Query   `cmd:"" help:"List the leaf paths matching a predicate."`
	Suggest Suggest `cmd:"" help:"Suggest existing paths close to KEY."`
	Export  Export  `cmd:"" help:"Print the merged tables as JSON or YAML."`
}

// Run parses args and executes the selected command. exit is called with 1
// when has reports a missing key, and by kong on --help or usage errors.
func Run(ctx context.Context, stdout, stderr io.Writer, exit func(code int), args ...string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return RunWithConfig(ctx, cfg, stdout, stderr, exit, args...)
}

// RunWithConfig is Run with an explicit environment configuration.
func RunWithConfig(ctx context.Context, cfg Config, stdout, stderr io.Writer, exit func(code int), args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups([]kong.Group{{Key: "log", Title: "Logging options"}}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := cli.Log.logger(stderr, cfg)
	if err != nil {
		return err
	}

	app := newApp(ctx, &cli, cfg, stdout, exit, logger)
	defer app.close()

	return ktx.Run(app)
}
