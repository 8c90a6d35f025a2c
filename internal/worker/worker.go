// Package worker is the convert-worker subcommand: the same binary re-exec'd
// as a child process so library-based conversions run isolated from the
// serving process. It writes Markdown to stdout and frames failures on
// stderr as "ConversionError: <message>" so the parent's diagnostic
// extraction applies uniformly across all tools.
package worker

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Command is the argv[1] value that switches the binary into worker mode.
const Command = "convert-worker"

// Run converts the file at path according to format, writing Markdown to w.
func Run(format, path string, w io.Writer) error {
	var (
		md  string
		err error
	)
	switch format {
	case "xlsx":
		md, err = convertXLSX(path)
	case "xls":
		md, err = convertXLS(path)
	default:
		return fmt.Errorf("unknown worker format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, md)
	return err
}

// Main is the subcommand entry point. Returns the process exit code.
func Main(args []string) int {
	fs := flag.NewFlagSet(Command, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	format := fs.String("format", "", "input format (xlsx or xls)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *format == "" || fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "ConversionError: usage: %s --format <xlsx|xls> <path>\n", Command)
		return 2
	}

	if err := Run(*format, fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ConversionError: %v\n", err)
		return 1
	}
	return 0
}
