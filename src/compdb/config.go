// Utilities for reading the config files.

package compdb

import (
	"fmt"
	"os"

	"github.com/google/shlex"
	"github.com/please-build/gcfg"

	"github.com/please-build/zigcompdb/src/fs"
)

// ConfigFileName is the name of the per-project config file, read from the working directory.
const ConfigFileName = ".compdbconfig"

// UserConfigFileName is the user-level config file, read before the project one.
const UserConfigFileName = "~/.config/zig_compdb/config"

// DefaultOutput is the name of the database we write if nothing else is specified.
const DefaultOutput = "compile_commands.json"

// Configuration is the structure of the config files.
type Configuration struct {
	Compdb struct {
		Directory string
		Output    string
		Compiler  string
		ExtraArgs string
	}
}

// DefaultConfiguration returns the configuration used when no config files override it.
func DefaultConfiguration() *Configuration {
	config := Configuration{}
	config.Compdb.Output = DefaultOutput
	config.Compdb.Compiler = DefaultCompiler
	return &config
}

// DefaultConfigFiles returns the config files that are read when none are given explicitly.
func DefaultConfigFiles() []string {
	return []string{fs.ExpandHomePath(UserConfigFileName), ConfigFileName}
}

func readConfigFile(config *Configuration, filename string) error {
	if err := gcfg.ReadFileInto(config, filename); err != nil && os.IsNotExist(err) {
		return nil // It's not an error to not have the file at all.
	} else if err != nil {
		return err
	}
	log.Debug("Read config from %s", filename)
	return nil
}

// ReadConfigFiles reads config files from the given locations, in order.
// Values are filled in by defaults initially and then overridden by each file in turn.
// Files that don't exist are silently skipped.
func ReadConfigFiles(filenames []string) (*Configuration, error) {
	config := DefaultConfiguration()
	for _, filename := range filenames {
		if err := readConfigFile(config, filename); err != nil {
			return config, fmt.Errorf("Error reading config file %s: %w", filename, err)
		}
	}
	if config.Compdb.Compiler == "" {
		return config, fmt.Errorf("compdb.compiler must not be empty")
	}
	return config, nil
}

// Parser returns a Parser set up according to this configuration.
func (config *Configuration) Parser() (*Parser, error) {
	extraArgs, err := shlex.Split(config.Compdb.ExtraArgs)
	if err != nil {
		return nil, fmt.Errorf("Invalid compdb.extraargs %q: %w", config.Compdb.ExtraArgs, err)
	}
	return &Parser{
		Compiler:  config.Compdb.Compiler,
		ExtraArgs: extraArgs,
	}, nil
}
