package cli

import (
	"errors"
	"io"
	"os"
)

// Stdio is the filename used on the command line to mean stdin or stdout.
const Stdio = "-"

var seenStdin = false // Used to track that we don't try to read stdin twice

var errRepeatedStdin = errors.New("can't read stdin more than once")

// OpenInput opens the given file for reading, or stdin if the filename is -.
func OpenInput(filename string) (io.ReadCloser, error) {
	if filename != Stdio {
		return os.Open(filename)
	} else if seenStdin {
		return nil, errRepeatedStdin
	}
	seenStdin = true
	return io.NopCloser(os.Stdin), nil
}

// ReadInput reads the entirety of the given file, or stdin if the filename is -.
func ReadInput(filename string) ([]byte, error) {
	f, err := OpenInput(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
