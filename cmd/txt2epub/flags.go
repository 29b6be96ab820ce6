package main

import (
	"errors"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// errHelpRequested is returned when -h/--help was given; usage is already printed.
var errHelpRequested = errors.New("help requested")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// bookFlags holds package metadata flags.
type bookFlags struct {
	title       string
	author      string
	language    string
	identifier  string
	publisher   string
	description string
	date        string
}

// textFlags holds plain-text handling flags.
type textFlags struct {
	keepLineBreaks bool
	markdown       bool
	encoding       string
}

// markupFlags holds reStructuredText publisher flags.
type markupFlags struct {
	backend string
	command string
	timeout time.Duration
}

// assetFlags holds template and style flags.
type assetFlags struct {
	style     string // name or path of an extra stylesheet
	template  string // template set name
	assetPath string // custom asset directory
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common       commonFlags
	output       string
	book         bookFlags
	text         textFlags
	markup       markupFlags
	assets       assetFlags
	vars         map[string]string
	varsFile     string
	keepWorkArea bool

	// changed records which flags were given explicitly, so a false bool
	// on the command line can still override true in a config file.
	changed map[string]bool
}

// set reports whether the named flag was given on the command line.
func (f *convertFlags) set(name string) bool {
	return f.changed[name]
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

func addBookFlags(fs *flag.FlagSet, f *bookFlags) {
	fs.StringVar(&f.title, "title", "", "book title")
	fs.StringVar(&f.author, "author", "", "book author")
	fs.StringVar(&f.language, "language", "", "book language (default en)")
	fs.StringVar(&f.identifier, "identifier", "", "unique identifier (default random urn:uuid)")
	fs.StringVar(&f.publisher, "publisher", "", "publisher name")
	fs.StringVar(&f.description, "description", "", "book description")
	fs.StringVar(&f.date, "date", "", "publication date (\"auto\" = today)")
}

func addTextFlags(fs *flag.FlagSet, f *textFlags) {
	fs.BoolVarP(&f.keepLineBreaks, "keep-line-breaks", "b", false, "keep every line break in plain text")
	fs.BoolVar(&f.markdown, "markdown", false, "convert .md and .markdown sources as Markdown")
	fs.StringVar(&f.encoding, "encoding", "", "source text encoding (default utf-8)")
}

func addMarkupFlags(fs *flag.FlagSet, f *markupFlags) {
	fs.StringVar(&f.backend, "rst-backend", "", "reStructuredText publisher: docutils, pandoc")
	fs.StringVar(&f.command, "rst-command", "", "publisher executable override")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-document publisher timeout (e.g. 30s)")
}

func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "extra CSS style name or file path")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
func newConvertFlagSet(name string, f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&f.output, "output", "o", "", "output .epub path")
	fs.StringToStringVar(&f.vars, "var", nil, "template variable key=value (repeatable)")
	fs.StringVar(&f.varsFile, "vars-file", "", "YAML mapping of template variables")
	fs.BoolVar(&f.keepWorkArea, "keep-workarea", false, "keep the scratch directory and print its path")

	addCommonFlags(fs, &f.common)
	addBookFlags(fs, &f.book)
	addTextFlags(fs, &f.text)
	addMarkupFlags(fs, &f.markup)
	addAssetFlags(fs, &f.assets)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	return parseFlagsWithUsage("convert", args, stderr, printConvertUsage)
}

// parseFlagsWithUsage parses the convert flag set under the given command
// name, printing usage on -h.
func parseFlagsWithUsage(name string, args []string, stderr io.Writer, usage func(io.Writer)) (*convertFlags, []string, error) {
	f := &convertFlags{changed: make(map[string]bool)}
	fs := newConvertFlagSet(name, f)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, errHelpRequested
		}
		return nil, nil, err
	}

	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })
	return f, fs.Args(), nil
}
