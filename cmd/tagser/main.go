package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tagser "github.com/reoring/tagser"
	"github.com/reoring/tagser/codec"
	"github.com/reoring/tagser/config"
	"github.com/reoring/tagser/output/colorout"
	"github.com/reoring/tagser/output/jsonout"
	"github.com/reoring/tagser/source"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "render":
		return renderCmd(args[1:], stdin, stdout, stderr)
	case "config":
		return configCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "tagser CLI\n\nUsage:\n  tagser render [-in file] [-from json|yaml] [-format text|json|yaml] [-color auto|always|never] [-config file]\n  tagser config [-config file]\n\nNotes:\n  - render reads stdin when -in is empty or \"-\".\n  - Flags override values from -config.")
}

type renderFlags struct {
	in         string
	from       string
	format     string
	color      string
	indent     string
	duplicates string
	maxDepth   int
	cfgPath    string
	verbose    bool
}

func renderCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f renderFlags
	fs.StringVar(&f.in, "in", "", "input document (default stdin)")
	fs.StringVar(&f.from, "from", "", "input format: json or yaml (default from file extension, else json)")
	fs.StringVar(&f.format, "format", "", "output format: text, json or yaml")
	fs.StringVar(&f.color, "color", "", "colour text output: auto, always or never")
	fs.StringVar(&f.indent, "indent", "", "indent unit for json output")
	fs.StringVar(&f.duplicates, "duplicates", "", "duplicate key policy: error, last-wins or keep")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.StringVar(&f.cfgPath, "config", "", "YAML configuration file")
	fs.BoolVar(&f.verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	log := newLogger(stderr, f.verbose)

	cfg, err := config.Load(f.cfgPath)
	if err != nil {
		log.Error("loading config", "err", err)
		return exitUsage
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "from":
			cfg.Input.Format = f.from
		case "format":
			cfg.Format = f.format
		case "color":
			cfg.Color = f.color
		case "indent":
			cfg.Indent = f.indent
		case "duplicates":
			cfg.Input.Duplicates = f.duplicates
		case "max-depth":
			cfg.MaxDepth = f.maxDepth
			cfg.Input.MaxDepth = f.maxDepth
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		return exitUsage
	}

	r, name, closeIn, err := openInput(f.in, stdin)
	if err != nil {
		log.Error("opening input", "err", err)
		return exitError
	}
	defer closeIn()

	format := cfg.Input.Format
	if format == "" {
		format = source.FormatFromPath(name)
	}
	if format == "" {
		format = "json"
	}
	drv, _ := source.Lookup(format)
	log.Debug("decoding", "input", name, "format", format, "driver", drv.Name(), "config", f.cfgPath)

	doc, err := source.Decode(r, format, cfg.SourceOptions())
	if err != nil {
		log.Error("decoding input", "input", name, "err", err)
		return exitError
	}
	if table := cfg.Table(); table != nil {
		rec, ok := doc.(tagser.Record)
		if !ok {
			log.Warn("field rules ignored: document is not an object", "input", name)
		} else if doc, err = rec.Apply(table); err != nil {
			log.Error("applying field rules", "err", err)
			return exitError
		}
	}

	c, ok := codec.Lookup(cfg.Format)
	if !ok {
		log.Error("unknown output format", "format", cfg.Format)
		return exitUsage
	}
	opts := []tagser.Option{tagser.WithMaxDepth(cfg.MaxDepth)}
	if enc := encoderFor(cfg, stdout); enc != nil {
		opts = append(opts, tagser.WithEncoder(enc))
	}
	log.Debug("rendering", "format", c.Name(), "contentType", c.ContentType(), "color", cfg.Color, "maxDepth", cfg.MaxDepth)
	b, err := c.Marshal(doc, opts...)
	if err != nil {
		log.Error("rendering", "err", err)
		return exitError
	}
	out := string(b)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(stdout, out); err != nil {
		log.Error("writing output", "err", err)
		return exitError
	}
	return exitOK
}

func configCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath string
	fs.StringVar(&cfgPath, "config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	log := newLogger(stderr, false)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("loading config", "err", err)
		return exitUsage
	}
	b, err := cfg.Marshal()
	if err != nil {
		log.Error("encoding config", "err", err)
		return exitError
	}
	if _, err := stdout.Write(b); err != nil {
		return exitError
	}
	return exitOK
}

// encoderFor returns an encoder replacing the codec's default one, or nil when
// the codec's own encoder applies.
func encoderFor(cfg config.Config, stdout io.Writer) func() tagser.Encoder {
	switch cfg.Format {
	case config.FormatJSON:
		if cfg.Indent != "" {
			return jsonout.New(jsonout.Indent(cfg.Indent))
		}
	case config.FormatText:
		mode, _ := colorout.ParseMode(cfg.Color)
		return colorout.New(mode, stdout)
	}
	return nil
}

func openInput(path string, stdin io.Reader) (io.Reader, string, func(), error) {
	if path == "" || path == "-" {
		return stdin, "<stdin>", func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, path, func() {}, err
	}
	return f, path, func() { _ = f.Close() }, nil
}
