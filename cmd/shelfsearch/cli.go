package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"shelfsearch/internal/core/editdist"
	"shelfsearch/internal/core/fuzzy"
	"shelfsearch/internal/core/normalize"
	"shelfsearch/internal/core/version"
	"shelfsearch/internal/modkit"
	mmodule "shelfsearch/internal/modkit/module"
	"shelfsearch/internal/platform/config"
	perr "shelfsearch/internal/platform/errors"
	"shelfsearch/internal/platform/logger"
	str "shelfsearch/internal/platform/strings"
	catalogdom "shelfsearch/internal/services/catalog/domain"
	catalogmod "shelfsearch/internal/services/catalog/module"

	"github.com/google/uuid"
)

// newSearchID tags search logs (seam)
var newSearchID = uuid.NewString

type command struct {
	usage string
	run   func(ctx context.Context, args []string, out, errOut io.Writer) error
}

var commands = map[string]command{
	"fold":     {"fold TEXT...", runFold},
	"distance": {"distance A B", runDistance},
	"match":    {"match [-explain] HAYSTACK NEEDLE", runMatch},
	"search":   {"search [-catalog path] [-editions|-author name|-series name|-work id] [-json] QUERY...", runSearch},
	"stats":    {"stats [-catalog path]", runStats},
	"version":  {"version", runVersion},
}

// run dispatches a subcommand and returns the process exit status
func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	opts := logger.FromEnv()
	opts.Writer = errOut
	logger.Init(opts)

	if len(args) == 0 {
		usage(errOut)
		return perr.ExitUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(errOut, "unknown command %q\n", args[0])
		usage(errOut)
		return perr.ExitUsage
	}

	err := cmd.run(ctx, args[1:], out, errOut)
	switch {
	case err == nil:
		return perr.ExitOK
	case errors.Is(err, flag.ErrHelp):
		return perr.ExitOK
	case errors.Is(err, errFlags):
		return perr.ExitUsage
	}
	_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
	if perr.ExitCode(err) == perr.ExitUsage {
		_, _ = fmt.Fprintf(errOut, "usage: shelfsearch %s\n", cmd.usage)
	}
	return perr.ExitCode(err)
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	_, _ = fmt.Fprintln(w, "usage:")
	for _, n := range names {
		_, _ = fmt.Fprintf(w, "  shelfsearch %s\n", commands[n].usage)
	}
}

// errFlags marks a flag parse failure already reported by the FlagSet
var errFlags = errors.New("bad flags")

func parse(fs *flag.FlagSet, args []string, errOut io.Writer) error {
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errFlags
	}
	return nil
}

func runFold(_ context.Context, args []string, out, _ io.Writer) error {
	if len(args) == 0 {
		return perr.InvalidArgf("fold: text required")
	}
	s := strings.Join(args, " ")
	_, err := fmt.Fprintf(out, "%s\t%s\n", normalize.Fold(s), normalize.Key(s))
	return err
}

func runDistance(_ context.Context, args []string, out, _ io.Writer) error {
	if len(args) != 2 {
		return perr.InvalidArgf("distance: want 2 arguments, got %d", len(args))
	}
	_, err := fmt.Fprintln(out, editdist.Distance(args[0], args[1]))
	return err
}

// env is the CLI's view of the SHELFSEARCH_ namespace
func env() config.Conf { return config.New().Prefix("SHELFSEARCH_") }

// tuning registers matcher flags that default to the env configuration
func tuning(fs *flag.FlagSet, def catalogmod.Options) (*float64, *int) {
	ratio := fs.Float64("prefix-ratio", def.PrefixRatio, "share of the needle used by the prefix stage, in (0,1]")
	checks := fs.Int("window-checks", def.MaxWindowChecks, "max sliding windows compared per haystack word")
	return ratio, checks
}

func runMatch(_ context.Context, args []string, out, errOut io.Writer) error {
	def := catalogmod.FromConfig(config.New())
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	explain := fs.Bool("explain", env().MayBool("EXPLAIN", false), "print the stage that matched")
	ratio, checks := tuning(fs, def)
	if err := parse(fs, args, errOut); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return perr.InvalidArgf("match: want HAYSTACK and NEEDLE, got %d arguments", fs.NArg())
	}

	opts := fuzzy.DefaultOptions()
	opts.PrefixRatio = *ratio
	opts.MaxWindowChecks = *checks
	m, err := fuzzy.New(opts)
	if err != nil {
		return err
	}

	stage, ok := m.Explain(fs.Arg(0), fs.Arg(1))
	if *explain && ok {
		_, err = fmt.Fprintf(out, "%v\t%s\n", ok, stage)
		return err
	}
	_, err = fmt.Fprintln(out, ok)
	return err
}

type searchFlags struct {
	catalog  string
	workers  int
	editions bool
	author   string
	series   string
	work     string
	json     bool
	timeout  time.Duration
	ratio    *float64
	checks   *int
}

func runSearch(ctx context.Context, args []string, out, errOut io.Writer) error {
	def := catalogmod.FromConfig(config.New())
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	var f searchFlags
	fs.StringVar(&f.catalog, "catalog", def.Catalog, "catalog JSON document (env SHELFSEARCH_CATALOG)")
	fs.IntVar(&f.workers, "workers", def.Workers, "concurrent candidate evaluations")
	fs.BoolVar(&f.editions, "editions", false, "search editions by ISBN or publisher instead of works")
	fs.StringVar(&f.author, "author", "", "list works by this author")
	fs.StringVar(&f.series, "series", "", "list works of this series in order")
	fs.StringVar(&f.work, "work", "", "list editions of this work id")
	fs.BoolVar(&f.json, "json", env().MayEnum("OUTPUT", "table", "table", "json") == "json", "print JSON (env SHELFSEARCH_OUTPUT)")
	fs.DurationVar(&f.timeout, "timeout", env().MayDuration("TIMEOUT", 0), "abort the search after this long, 0 waits")
	f.ratio, f.checks = tuning(fs, def)
	if err := parse(fs, args, errOut); err != nil {
		return err
	}

	mod, err := openCatalog(f.catalog, catalogmod.Options{
		Workers:         f.workers,
		PrefixRatio:     *f.ratio,
		MaxWindowChecks: *f.checks,
	})
	if err != nil {
		return err
	}
	search, err := searchPort(mod.Name())
	if err != nil {
		return err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	ctx = logger.WithSearch(ctx, newSearchID(), mod.Options().Catalog)
	query := strings.Join(fs.Args(), " ")

	var res any
	var n int
	switch {
	case f.work != "":
		eds, err := search.EditionsOfWork(ctx, f.work)
		res, n = eds, len(eds)
		if err != nil {
			return err
		}
	case f.author != "":
		ws, err := search.WorksByAuthor(ctx, f.author)
		res, n = ws, len(ws)
		if err != nil {
			return err
		}
	case f.series != "":
		ws, err := search.WorksBySeries(ctx, f.series)
		res, n = ws, len(ws)
		if err != nil {
			return err
		}
	case str.IsBlank(query):
		return perr.InvalidArgf("search: query required")
	case f.editions:
		eds, err := search.SearchEditions(ctx, query)
		res, n = eds, len(eds)
		if err != nil {
			return err
		}
	default:
		ws, err := search.SearchWorks(ctx, query)
		res, n = ws, len(ws)
		if err != nil {
			return err
		}
	}
	logger.C(ctx).Info().Str("query", query).Int("results", n).Msg("search done")

	if f.json {
		return writeJSON(out, res)
	}
	return writeTable(out, res)
}

func runStats(ctx context.Context, args []string, out, errOut io.Writer) error {
	def := catalogmod.FromConfig(config.New())
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	path := fs.String("catalog", def.Catalog, "catalog JSON document (env SHELFSEARCH_CATALOG)")
	if err := parse(fs, args, errOut); err != nil {
		return err
	}
	mod, err := openCatalog(*path, catalogmod.Options{})
	if err != nil {
		return err
	}
	search, err := searchPort(mod.Name())
	if err != nil {
		return err
	}
	st, err := search.Stats(ctx)
	if err != nil {
		return err
	}
	return writeJSON(out, st)
}

func runVersion(_ context.Context, _ []string, out, _ io.Writer) error {
	return writeJSON(out, version.Info())
}

func openCatalog(path string, overrides catalogmod.Options) (*catalogmod.Module, error) {
	overrides.Catalog = path
	deps := modkit.Deps{Log: *logger.Named("catalog"), Cfg: config.New()}
	mod, err := catalogmod.New(deps, overrides)
	if err != nil {
		return nil, err
	}
	mmodule.Register(mod.Name(), mod.Ports())
	return mod, nil
}

// searchPort looks the catalog search port up in the module registry
func searchPort(name string) (catalogdom.SearchPort, error) {
	p, ok := mmodule.PortsAs[catalogmod.Ports](name)
	if !ok || p.Search == nil {
		return nil, perr.Newf(perr.ErrorCodeUnknown, "module %q has no search port registered", name)
	}
	return p.Search, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode output")
	}
	return nil
}

func writeTable(w io.Writer, v any) error {
	var err error
	switch rows := v.(type) {
	case []catalogdom.Work:
		for _, r := range rows {
			if _, err = fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Title, r.Author); err != nil {
				break
			}
		}
	case []catalogdom.Edition:
		for _, r := range rows {
			if _, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ISBN, r.WorkID, r.Publisher, r.Format); err != nil {
				break
			}
		}
	}
	return perr.WrapIf(err, perr.ErrorCodeIO, "write output")
}
