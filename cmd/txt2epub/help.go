package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2epub <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Build an EPUB from text, reStructuredText and PNG files")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  doctor     Check publisher tools and system setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'txt2epub help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2epub convert -o <book.epub> [flags] <source>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build one EPUB from the sources, in the order given.")
	fmt.Fprintln(w, "  .txt and unknown types   wrapped as XHTML paragraphs")
	fmt.Fprintln(w, "  .rst                     published with docutils or pandoc")
	fmt.Fprintln(w, "  .png                     copied as an image")
	fmt.Fprintln(w, "  .md, .markdown           converted as Markdown with --markdown")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .epub path")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --keep-workarea       Keep the scratch directory for inspection")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Book:")
	fmt.Fprintln(w, "      --title <s>           Title (default \"Untitled\")")
	fmt.Fprintln(w, "      --author <s>          Author")
	fmt.Fprintln(w, "      --language <s>        Language tag (default \"en\")")
	fmt.Fprintln(w, "      --identifier <s>      Unique identifier (default random urn:uuid)")
	fmt.Fprintln(w, "      --publisher <s>       Publisher")
	fmt.Fprintln(w, "      --description <s>     Description")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, year, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Date]: YYYY")
	fmt.Fprintln(w, "      --var <key=value>     Extra template variable (repeatable)")
	fmt.Fprintln(w, "      --vars-file <path>    YAML mapping of template variables")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Text:")
	fmt.Fprintln(w, "  -b, --keep-line-breaks    Keep every line break instead of joining paragraphs")
	fmt.Fprintln(w, "      --markdown            Convert .md and .markdown sources as Markdown")
	fmt.Fprintln(w, "      --encoding <label>    Source encoding (default utf-8)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "reStructuredText:")
	fmt.Fprintln(w, "      --rst-backend <s>     Publisher: docutils (default), pandoc")
	fmt.Fprintln(w, "      --rst-command <path>  Publisher executable override")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --style <name|path>   Extra CSS appended to the stylesheet")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/ and styles/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TXT2EPUB_CONFIG, TXT2EPUB_OUTPUT, TXT2EPUB_TITLE, TXT2EPUB_AUTHOR,")
	fmt.Fprintln(w, "  TXT2EPUB_LANGUAGE, TXT2EPUB_PUBLISHER, TXT2EPUB_DATE, TXT2EPUB_ENCODING,")
	fmt.Fprintln(w, "  TXT2EPUB_STYLE, TXT2EPUB_TEMPLATE, TXT2EPUB_ASSET_PATH,")
	fmt.Fprintln(w, "  TXT2EPUB_RST_BACKEND, TXT2EPUB_RST_COMMAND, TXT2EPUB_TIMEOUT")
	fmt.Fprintln(w, "  Read from .env or .env.local when present. Flags override them.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2epub doctor [--json] [-c <config>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the reStructuredText publishers are installed and the")
	fmt.Fprintln(w, "temp directory is writable. A markup command set in the config file")
	fmt.Fprintln(w, "or TXT2EPUB_RST_COMMAND is checked too.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Machine-readable output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: txt2epub version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: txt2epub help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
