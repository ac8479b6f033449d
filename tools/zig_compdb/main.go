// Package main implements zig_compdb, a tool to generate a compile_commands.json compilation
// database from a log of `zig clang` invocations (e.g. as printed by `zig build --verbose-cc`).
package main

import (
	"fmt"
	"os"

	"github.com/please-build/zigcompdb/src/cli"
	"github.com/please-build/zigcompdb/src/cli/logging"
	"github.com/please-build/zigcompdb/src/compdb"
	"github.com/please-build/zigcompdb/src/fs"
)

var log = logging.Log

type options struct {
	Usage     string
	Verbosity cli.Verbosity `short:"v" long:"verbosity" default:"notice" description:"Verbosity of output (error, warning, notice, info, debug)"`
	Directory string        `short:"d" long:"directory" description:"Base directory for compilation (default: current directory)"`
	Output    cli.Filepath  `short:"o" long:"output" description:"Output JSON file (default: compile_commands.json)"`
	Config    cli.Filepath  `short:"c" long:"config" description:"Additional config file to read, overriding .compdbconfig"`
	Args      struct {
		InputFile cli.Filepath `positional-arg-name:"input_file" required:"true" description:"File containing compiler commands, or - to read from stdin"`
	} `positional-args:"true"`
}

var opts = options{
	Usage: `
zig_compdb generates a compile_commands.json database from compiler invocations.

Its input is a file containing commands of the form
  zig clang <source_file> <flags> -MT <target> ... -c -o <output_file>
one per line. Lines that don't match are ignored, as are blank lines and # comments.
For example:

zig build --verbose-cc 2> commands.txt
zig_compdb -d $PWD commands.txt

Defaults for --directory and --output, the compiler to write into each entry and any extra
arguments to add to it can be set in a .compdbconfig file:

[compdb]
output = build/compile_commands.json
compiler = clang++
extraargs = -DFOO '-I/some dir'
`,
}

func main() {
	cli.ParseFlagsFromArgsOrDie("zig_compdb", &opts, os.Args, nil)
	cli.InitLogging(opts.Verbosity)
	if err := run(&opts, compdb.DefaultConfigFiles()); err != nil {
		log.Fatalf("%s", err)
	}
}

// run builds the database described by the given options. configFiles are read before any
// --config file; flags take precedence over all of them.
func run(opts *options, configFiles []string) error {
	configFiles = append([]string{}, configFiles...)
	if opts.Config != "" {
		if !fs.FileExists(string(opts.Config)) {
			return fmt.Errorf("Config file %s does not exist", opts.Config)
		}
		configFiles = append(configFiles, string(opts.Config))
	}
	config, err := compdb.ReadConfigFiles(configFiles)
	if err != nil {
		return err
	}
	parser, err := config.Parser()
	if err != nil {
		return err
	}

	directory := opts.Directory
	if directory == "" {
		directory = config.Compdb.Directory
	}
	if directory == "" {
		if directory, err = os.Getwd(); err != nil {
			return fmt.Errorf("Failed to determine working directory: %w", err)
		}
	}
	output := string(opts.Output)
	if output == "" {
		output = fs.ExpandHomePath(config.Compdb.Output)
	}

	_, err = parser.Build(string(opts.Args.InputFile), directory, output)
	return err
}
