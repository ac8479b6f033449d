package compdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/hashicorp/go-multierror"

	"github.com/please-build/zigcompdb/src/cli/logging"
	"github.com/please-build/zigcompdb/src/fs"
)

var log = logging.Log

// A Database is an ordered set of compilation database entries.
type Database []Entry

// A LineError describes a line of the log that couldn't be parsed.
type LineError struct {
	Line    int
	Content string
	Err     error
}

// Error implements the builtin error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("Error parsing line %d: %s", e.Line, e.Err)
}

// Unwrap returns the underlying cause of this error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLines parses each of the given lines into the database, in order.
// Lines that can't be parsed are logged and skipped; the returned error aggregates all of them
// and is nil if there were none. The returned database is always usable.
func (p *Parser) ParseLines(lines []string, directory string) (Database, error) {
	db := Database{}
	var errs *multierror.Error
	for i, line := range lines {
		entry, err := p.parseLineSafely(line, directory)
		if err != nil {
			lineErr := &LineError{Line: i + 1, Content: strings.TrimSpace(line), Err: err}
			log.Error("%s", lineErr)
			log.Error("Line content: %s", lineErr.Content)
			errs = multierror.Append(errs, lineErr)
			continue
		} else if entry == nil {
			continue
		}
		log.Debug("Line %d: %s", i+1, shellescape.QuoteCommand(entry.Arguments))
		db = append(db, *entry)
	}
	return db, errs.ErrorOrNil()
}

// Parse reads the whole of r and parses it line by line.
func (p *Parser) Parse(r io.Reader, directory string) (Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.ParseLines(splitLines(string(data)), directory)
}

// parseLineSafely parses a line, converting any panic into an error so one bad line can't
// take down the whole run.
func (p *Parser) parseLineSafely(line, directory string) (entry *Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%s", r)
			}
		}
	}()
	return p.ParseLine(line, directory)
}

// splitLines splits text into lines. Any of \n, \r\n or a lone \r ends a line, and a trailing
// line ending doesn't produce an extra empty line.
func splitLines(text string) []string {
	var lines []string
	for text != "" {
		i := strings.IndexAny(text, "\r\n")
		if i == -1 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return lines
}

// WriteTo writes the database as an indented JSON array.
// An empty database is written as [] rather than null.
func (db Database) WriteTo(w io.Writer) (int64, error) {
	if db == nil {
		db = Database{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(db); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// WriteFile writes the database to the given file, replacing anything already there.
func (db Database) WriteFile(filename string) (int64, error) {
	var buf bytes.Buffer
	if _, err := db.WriteTo(&buf); err != nil {
		return 0, err
	}
	return fs.WriteFile(&buf, filename, 0)
}
