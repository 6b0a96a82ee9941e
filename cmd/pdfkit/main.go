// Command pdfkit exposes the pdfkit operations on the command line.
//
// Usage:
//
//	pdfkit [-config file] <command> [flags] args
//
// Commands:
//
//	lines   <pdf>                   print the document's text lines, one per line
//	count   <pdf>                   print the page count
//	search  [-case] <pdf> <term>    print the lines containing term
//	extract <in> <out> <n>[,<n>...] write the given pages to a new PDF
//	meta    <pdf>                   print metadata as JSON
//	text    <pdf> [out]             print the text, or write it to out
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/pdfkit"
	"github.com/tsawler/pdfkit/config"
	"github.com/tsawler/pdfkit/format"
)

const usage = `usage: pdfkit [-config file] <command> [flags] args

commands:
  lines   <pdf>
  count   <pdf>
  search  [-case] <pdf> <term>
  extract <in> <out> <n>[,<n>...]
  meta    <pdf>
  text    <pdf> [out]
`

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pdfkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pdfkit: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "pdfkit: %v\n", err)
		return 1
	}
	defer logger.Sync()

	c := &cli{
		kit:    newKit(cfg, logger),
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}

	if err := c.dispatch(fs.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, usage)
			return 2
		}
		if t := pdfkit.TypeOf(err); t != "" {
			fmt.Fprintf(stderr, "pdfkit: %s: %v\n", t, err)
		} else {
			fmt.Fprintf(stderr, "pdfkit: %v\n", err)
		}
		return 1
	}
	return 0
}

// newLogger builds a production logger writing to stderr at level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	zc.Encoding = "console"
	return zc.Build()
}

func newKit(cfg *config.Config, logger *zap.Logger) *pdfkit.Kit {
	kit := pdfkit.New().WithLogger(logger)
	if cfg.Pages.Strict {
		kit = kit.StrictPages()
	}
	if cfg.OCR.Enabled {
		kit = kit.WithOCR(cfg.OCR.Language)
	}
	return kit
}

type cli struct {
	kit    *pdfkit.Kit
	cfg    *config.Config
	logger *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) dispatch(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	c.logger.Debug("running command", zap.String("command", cmd), zap.Strings("args", rest))

	switch cmd {
	case "lines":
		return c.lines(rest)
	case "count":
		return c.count(rest)
	case "search":
		return c.search(rest)
	case "extract":
		return c.extract(rest)
	case "meta":
		return c.meta(rest)
	case "text":
		return c.text(rest)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (c *cli) lines(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	lines, err := c.kit.IntoArray(args[0])
	if err != nil {
		return err
	}
	return c.printLines(lines)
}

func (c *cli) count(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := c.kit.PageCount(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, n)
	return err
}

func (c *cli) search(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	caseSensitive := fs.Bool("case", c.cfg.Search.CaseSensitive, "match case exactly")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		return errUsage
	}

	matches, err := c.kit.SearchText(fs.Arg(0), fs.Arg(1), pdfkit.SearchOptions{
		CaseSensitive: *caseSensitive,
	})
	if err != nil {
		return err
	}
	return c.printLines(matches)
}

func (c *cli) extract(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	pageNumbers, err := parsePages(args[2])
	if err != nil {
		return err
	}
	return c.kit.ExtractPages(args[0], args[1], pageNumbers)
}

func (c *cli) meta(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	md, err := c.kit.GetMetadata(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(md)
}

func (c *cli) text(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}

	out := ""
	if len(args) == 2 {
		out = args[1]
		if format.Detect(out) != format.Text {
			c.logger.Warn("output file does not have a text extension",
				zap.String("output", out),
				zap.String("want", format.Text.Extension()))
		}
	}

	text, err := c.kit.ConvertToText(args[0], out)
	if err != nil {
		return err
	}
	if out == "" {
		_, err = fmt.Fprintln(c.stdout, text)
	}
	return err
}

func (c *cli) printLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(c.stdout, line); err != nil {
			return err
		}
	}
	return nil
}

// parsePages parses a comma-separated list such as "3,1,3".
func parsePages(s string) ([]int, error) {
	var pageNumbers []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q: %w", field, errUsage)
		}
		pageNumbers = append(pageNumbers, n)
	}
	return pageNumbers, nil
}
