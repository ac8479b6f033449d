// Package cli contains helper functions related to flag parsing and logging.
package cli

import (
	"errors"
	"os"
	"path/filepath"

	cli "github.com/peterebden/go-cli-init/v5/flags"
	"github.com/thought-machine/go-flags"

	"github.com/please-build/zigcompdb/src/fs"
)

// ParseFlagsFromArgsOrDie parses the given flags and dies if unsuccessful.
// Also dies if any unexpected arguments are passed.
// It returns the active command if there is one.
func ParseFlagsFromArgsOrDie(appname string, data interface{}, args []string, additionalUsageInfo cli.AdditionalUsageInfo) string {
	return cli.ParseFlagsFromArgsOrDie(appname, data, args, additionalUsageInfo)
}

// ParseFlags parses the app's flags and returns the parser, any extra arguments, and any error encountered.
// It may exit if certain options are encountered (eg. --help).
func ParseFlags(appname string, data interface{}, args []string, opts flags.Options, completionHandler cli.CompletionHandler, additionalUsageInfo cli.AdditionalUsageInfo) (*flags.Parser, []string, error) {
	return cli.ParseFlags(appname, data, args, opts, completionHandler, additionalUsageInfo)
}

var errEmptyPath = errors.New("path must not be empty")

// flagsError converts an error to a flags.Error, which is required for flag parsing.
func flagsError(err error) error {
	if err == nil {
		return nil
	}
	return &flags.Error{Type: flags.ErrMarshal, Message: err.Error()}
}

// A Filepath implements completion for file paths.
// This is distinct from upstream's in that it knows about completing into directories,
// and it expands a leading ~ to the user's home directory.
type Filepath string

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (f *Filepath) UnmarshalFlag(in string) error {
	if in == "" {
		return flagsError(errEmptyPath)
	}
	*f = Filepath(fs.ExpandHomePath(in))
	return nil
}

// Complete implements the flags.Completer interface.
func (f *Filepath) Complete(match string) []flags.Completion {
	matches, _ := filepath.Glob(match + "*")
	// If there's exactly one match and it's a directory, take its contents instead.
	if len(matches) == 1 {
		if info, err := os.Stat(matches[0]); err == nil && info.IsDir() {
			matches, _ = filepath.Glob(matches[0] + "/*")
		}
	}
	ret := make([]flags.Completion, len(matches))
	for i, match := range matches {
		ret[i].Item = match
	}
	return ret
}

// String implements the fmt.Stringer interface
func (f Filepath) String() string {
	return string(f)
}
