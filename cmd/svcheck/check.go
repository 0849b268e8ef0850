package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/svcheck/internal/config"
	"github.com/oxhq/svcheck/internal/elaborate"
	"github.com/oxhq/svcheck/internal/project"
	"github.com/oxhq/svcheck/internal/reporter"
	"github.com/oxhq/svcheck/internal/stdlib"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse and elaborate SystemVerilog sources, reporting diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.ResolveRunOptions(cmd.Flags())
			if err != nil {
				return err
			}
			failed, err := runCheck(opts)
			if err != nil {
				return err
			}
			if failed {
				os.Exit(1)
			}
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

// runCheck drives one end-to-end compile-and-elaborate pass and reports
// whether any Error-severity diagnostic fired. A project that cannot be
// built is returned as an error instead; project.FromSrcfile has already
// reported an unreadable filelist as ErrFile.
func runCheck(opts *config.RunOptions) (bool, error) {
	cfg := config.Load(opts.EnvFile)
	rep := reporter.New(os.Stderr)
	cfg.Apply(rep)

	var proj *project.Project
	var err error
	if opts.Filelist != "" {
		proj, err = project.FromSrcfile(rep, opts.Filelist)
	} else {
		proj, err = project.FromList(rep, opts.Files)
	}
	if err != nil {
		return false, err
	}
	for _, dir := range opts.Incdir {
		proj.AddIncdir(dir)
	}

	proj.CompileAll()

	elab := elaborate.New(rep)
	elab.Seed(stdlib.Seed())
	if opts.UVM || cfg.UVMSeed {
		elab.Seed(stdlib.UVMPackage())
	}
	elab.Build(proj.Asts, proj.Includes)
	elab.Link()

	return rep.HasErrors(), nil
}
