// Command svcheck is the checker's CLI composition root: it wires
// internal/config, internal/project, internal/stdlib, internal/elaborate,
// and internal/reporter together behind a cobra command tree, per
// SPEC_FULL.md §5's module layout. Grounded on the teacher's cmd/morfx
// main.go (flag resolution feeding a single Runner, special-cased exit
// codes) restructured around cobra since this is the one command in the
// pack's corpus the spec calls out by name (`svcheck check ...`).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "svcheck",
		Short:         "A static checker for SystemVerilog sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCommand())
	return root
}
