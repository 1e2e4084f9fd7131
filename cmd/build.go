package cmd

import (
	"fmt"

	"github.com/arnavsurve/vasc/internal/compiler"
	"github.com/spf13/cobra"
)

// build: compile .vasc -> .vasm
var BuildCmd = &cobra.Command{
	Use:   "build [source.vasc]",
	Short: "Compile a vasc source file into pseudo-assembly",
	Args:  cobra.MaximumNArgs(1),
	RunE:  buildRun,
}

func init() {
	BuildCmd.Flags().Bool("strip-comments", false, "omit the // comment on each generated line")
	BuildCmd.Flags().BoolP("quiet", "q", false, "only print warnings and errors")
}

func buildRun(cmd *cobra.Command, args []string) error {
	src := compiler.DefaultSource
	if len(args) == 1 {
		src = args[0]
	}
	strip, _ := cmd.Flags().GetBool("strip-comments")
	quiet, _ := cmd.Flags().GetBool("quiet")

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "↪ building %q → %q ...\n", src, outPath)
	}

	res, err := compiler.CompileAndWrite(src, outPath, compiler.Options{StripComments: strip})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if !quiet {
		fmt.Fprintf(out, "✔︎ wrote instructions to %s\n", outPath)
	}
	return nil
}
