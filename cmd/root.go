package cmd

import (
	"github.com/arnavsurve/vasc/internal/compiler"
	"github.com/spf13/cobra"
)

var outPath string

var rootCmd = &cobra.Command{
	Use:   "vasc",
	Short: "vasc — compiler for .vasc sources into pseudo-assembly",
	Long: `vasc compiles .vasc programs into line-oriented pseudo-assembly.

Commands:
  init   Scaffold a new vasc project
  build  Compile a (.vasc) source file into (.vasm) pseudo-assembly
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", compiler.DefaultOutput, "output file for generated instructions")

	rootCmd.AddCommand(InitCmd, BuildCmd)
}
