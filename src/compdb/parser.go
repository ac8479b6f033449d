// Package compdb builds Clang JSON compilation databases (compile_commands.json) from logs
// of `zig clang` compiler invocations.
//
// Each line of the log is expected to look something like
//
//	zig clang <source> <flags...> -MT <target> ... -c -o <output>
//
// Lines that don't have that shape are skipped. The flags between the source file and -MT
// are retained; everything from -MT onwards is dropped and replaced by a fresh
// `-c -o <output> <source>` suffix.
package compdb

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultCompiler is the compiler written as the first argument of every entry.
const DefaultCompiler = "clang++"

// An Entry is a single command in a compilation database.
type Entry struct {
	Arguments []string `json:"arguments"`
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Output    string   `json:"output"`
}

// A Parser converts invocation lines into Entries.
// The zero value is ready to use and emits DefaultCompiler with no extra arguments.
type Parser struct {
	// Compiler replaces DefaultCompiler as the first argument if set.
	Compiler string
	// ExtraArgs are inserted immediately after the compiler in every entry.
	ExtraArgs []string
}

var errInvalidUTF8 = errors.New("line is not valid UTF-8")

// ParseLine parses a single line using a default Parser.
func ParseLine(line, directory string) (*Entry, error) {
	var p Parser
	return p.ParseLine(line, directory)
}

// ParseLine parses a single line of the log into an Entry.
// It returns nil and no error for lines that aren't recognised as compiler invocations;
// an error is only returned for lines that can't be interpreted at all.
// Currently that means lines that aren't valid UTF-8. Those are rejected one line at a time,
// so one bad line doesn't make the whole log unreadable; comment lines are never checked.
func (p *Parser) ParseLine(line, directory string) (*Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	} else if !utf8.ValidString(line) {
		return nil, errInvalidUTF8
	}
	parts := strings.Fields(line)
	if len(parts) < 3 || !strings.Contains(parts[0], "zig") || parts[1] != "clang" {
		return nil, nil
	}
	source := parts[2]
	mt := indexOf(parts, "-MT")
	if mt == -1 {
		return nil, nil
	}
	output, present := outputFile(parts)
	if !present {
		return nil, nil
	}
	var flags []string
	if mt > 3 {
		flags = parts[3:mt]
	}
	args := make([]string, 0, len(p.ExtraArgs)+len(flags)+5)
	args = append(args, p.compiler())
	args = append(args, p.ExtraArgs...)
	args = append(args, flags...)
	args = append(args, "-c", "-o", output, source)
	return &Entry{
		Arguments: args,
		Directory: directory,
		File:      joinPath(directory, source),
		Output:    joinPath(directory, output),
	}, nil
}

func (p *Parser) compiler() string {
	if p.Compiler == "" {
		return DefaultCompiler
	}
	return p.Compiler
}

// indexOf returns the index of the first occurrence of needle in haystack, or -1.
func indexOf(haystack []string, needle string) int {
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	return -1
}

// outputFile finds the first -o in the line that is followed by another token.
// Note that this searches the whole line, including anything after -MT.
func outputFile(parts []string) (string, bool) {
	for i, part := range parts {
		if part == "-o" && i+1 < len(parts) {
			return parts[i+1], true
		}
	}
	return "", false
}

// joinPath joins a path from the log onto the base directory.
// Absolute paths are returned as they are. The result is not cleaned, so any "./" and "../"
// components are kept.
func joinPath(directory, path string) string {
	if filepath.IsAbs(path) || directory == "" {
		return path
	} else if strings.HasSuffix(directory, string(filepath.Separator)) {
		return directory + path
	}
	return directory + string(filepath.Separator) + path
}
