package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	xlsx "github.com/anfilat/xlsx-recover"
	"github.com/anfilat/xlsx-recover/internal/logging"
)

var version = "dev"

type options struct {
	delimiter    rune
	fallbackOnly bool
	noHeader     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xlsx2csv", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := fs.Bool("v", false, "show version")
	fs.BoolVar(showVersion, "version", false, "show version")

	delimiterFlag := fs.String("d", ",", "delimiter")
	fs.StringVar(delimiterFlag, "delimiter", ",", "delimiter")

	fallbackOnly := fs.Bool("fallback", false, "skip the styled reader")
	noHeader := fs.Bool("no-header", false, "do not write the header row")
	logLevel := fs.String("log-level", "warn", "log level")
	logFormat := fs.String("log-format", "text", "log format, text or json")

	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		fs.Usage()
		return 2
	}

	delimiter, err := parseDelimiter(*delimiterFlag)
	if err != nil {
		fmt.Fprintf(stderr, "invalid delimiter: %v\n", err)
		return 2
	}

	logger := logging.New(stderr, *logLevel, *logFormat)

	opts := options{
		delimiter:    delimiter,
		fallbackOnly: *fallbackOnly,
		noHeader:     *noHeader,
	}

	content, err := readInput(rest[0], stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var table *xlsx.Table
	if opts.fallbackOnly {
		table, err = xlsx.ReadFallback(content)
	} else {
		table, err = xlsx.NewReader(xlsx.WithLogger(logger)).Read(content)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Info("table read", "source", table.Source.String(), "columns", len(table.Header), "rows", len(table.Rows))

	if len(rest) == 1 {
		if err := writeTable(stdout, table, opts); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	if err := writeTableToFile(rest[1], table, opts); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

const usageText = `Usage:

 xlsx2csv [-h] [-v] [-d DELIMITER] [--fallback] [--no-header]
          [--log-level LEVEL] [--log-format FORMAT]
          xlsxfile [outfile]
positional arguments:

  xlsxfile              xlsx file path, use '-' to read from STDIN
  outfile               output csv file path (default: STDOUT)
optional arguments:

  -h, --help            show this help message and exit
  -v, --version         show program's version number and exit
  -d DELIMITER, --delimiter DELIMITER
                        delimiter - column delimiter in CSV, 'tab' or 'x09'
                        for a tab (default: comma ',')
  --fallback            read with the style-free reader only
  --no-header           do not write the header row
  --log-level LEVEL     debug, info, warn or error (default: warn)
  --log-format FORMAT   text or json (default: text)
`

func parseDelimiter(value string) (rune, error) {
	switch strings.ToLower(value) {
	case "tab", "x09":
		return '\t', nil
	}
	if value == "" {
		return 0, fmt.Errorf("delimiter cannot be empty")
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("delimiter must be a single character: %q", value)
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter %q is not allowed", value)
	}
	return r, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return content, nil
	}
	return os.ReadFile(path)
}

func writeTableToFile(path string, table *xlsx.Table, opts options) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := writeTable(file, table, opts); err != nil {
		return err
	}
	return file.Close()
}

func writeTable(w io.Writer, table *xlsx.Table, opts options) error {
	buf := bufio.NewWriter(w)
	cw := csv.NewWriter(buf)
	cw.Comma = opts.delimiter

	if !opts.noHeader {
		if err := cw.Write(table.Header); err != nil {
			return err
		}
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return buf.Flush()
}
