package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// RunOptions is the flag-resolved shape of one `svcheck check` invocation,
// the pflag analog of checks.go's per-subcommand *model.Config resolution.
type RunOptions struct {
	Files    []string
	Filelist string
	Incdir   []string
	UVM      bool
	EnvFile  string
}

// RegisterFlags attaches svcheck's run flags to fs, shared between
// cmd/svcheck's cobra command and any test harness that wants to build a
// RunOptions without going through cobra — the same reason checks.go
// takes a bare *pflag.FlagSet rather than a *cobra.Command.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("filelist", "f", "", "read source paths and +incdir+ entries from this file")
	fs.StringArrayP("incdir", "I", nil, "add a directory to the include search path (repeatable)")
	fs.Bool("uvm", false, "seed the elaborator with the built-in uvm_pkg schema")
	fs.String("env-file", ".svcheck.env", "path to the configuration override file")
}

// ResolveRunOptions reads the flags RegisterFlags attached, plus fs's
// positional arguments as source files.
func ResolveRunOptions(fs *pflag.FlagSet) (*RunOptions, error) {
	filelist, err := fs.GetString("filelist")
	if err != nil {
		return nil, fmt.Errorf("reading filelist flag: %w", err)
	}
	incdir, err := fs.GetStringArray("incdir")
	if err != nil {
		return nil, fmt.Errorf("reading incdir flag: %w", err)
	}
	uvm, err := fs.GetBool("uvm")
	if err != nil {
		return nil, fmt.Errorf("reading uvm flag: %w", err)
	}
	envFile, err := fs.GetString("env-file")
	if err != nil {
		return nil, fmt.Errorf("reading env-file flag: %w", err)
	}

	opts := &RunOptions{
		Files:    fs.Args(),
		Filelist: filelist,
		Incdir:   incdir,
		UVM:      uvm,
		EnvFile:  envFile,
	}
	if opts.Filelist == "" && len(opts.Files) == 0 {
		return nil, fmt.Errorf("no source files given: pass file paths or -f <filelist>")
	}
	return opts, nil
}
