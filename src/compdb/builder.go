package compdb

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/please-build/zigcompdb/src/cli"
)

// A ReadError is returned when the input log can't be read.
type ReadError struct {
	Path string
	Err  error
}

// Error implements the builtin error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("Error reading input file %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying cause of this error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// A WriteError is returned when the database can't be written.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the builtin error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("Error writing output file %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying cause of this error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// A Result summarises a single run of Build.
type Result struct {
	// Lines is the number of lines read from the input.
	Lines int
	// Entries is the number of entries written to the database.
	Entries int
	// Bytes is the size of the written database.
	Bytes int64
	// LineErrors holds every line that couldn't be parsed, or nil if there were none.
	LineErrors *multierror.Error
}

// Build reads the log at inputPath, parses it and writes the resulting database to outputPath.
// Either path may be "-" to use stdin / stdout.
// Lines that fail to parse are reported and skipped; only failing to read the input or write
// the output is returned as an error, as a *ReadError or *WriteError respectively.
func (p *Parser) Build(inputPath, directory, outputPath string) (*Result, error) {
	lines, err := readLines(inputPath)
	if err != nil {
		return nil, &ReadError{Path: inputPath, Err: err}
	}
	db, err := p.ParseLines(lines, directory)
	result := &Result{Lines: len(lines), Entries: len(db)}
	if merr, ok := err.(*multierror.Error); ok {
		result.LineErrors = merr
		log.Warning("%s could not be parsed", pluralise(len(merr.Errors), "line"))
	}
	if len(db) == 0 {
		log.Warning("No valid commands found in the input file")
	}
	n, err := writeDatabase(db, outputPath)
	if err != nil {
		return nil, &WriteError{Path: outputPath, Err: err}
	}
	result.Bytes = n
	if outputPath != cli.Stdio {
		log.Notice("Successfully created %s with %d entries (%s)", outputPath, len(db), humanize.Bytes(uint64(n)))
	}
	return result, nil
}

// Build is a convenience wrapper around Parser.Build using a default Parser.
func Build(inputPath, directory, outputPath string) (*Result, error) {
	var p Parser
	return p.Build(inputPath, directory, outputPath)
}

func readLines(path string) ([]string, error) {
	data, err := cli.ReadInput(path)
	if err != nil {
		return nil, err
	}
	return splitLines(string(data)), nil
}

func writeDatabase(db Database, path string) (int64, error) {
	if path == cli.Stdio {
		return db.WriteTo(os.Stdout)
	}
	return db.WriteFile(path)
}

func pluralise(n int, singular string) string {
	if n == 1 {
		return "1 " + singular
	}
	return humanize.Comma(int64(n)) + " " + singular + "s"
}
