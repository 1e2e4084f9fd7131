package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Scaffold a new vasc project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			targetDir   string
			projectName string
		)

		// targetDir is where files go, projectName is for templating
		if len(args) == 1 {
			targetDir = args[0]
			projectName = filepath.Base(args[0])
		} else {
			targetDir = "."
			cwd, err := os.Getwd()
			cobra.CheckErr(err)
			projectName = filepath.Base(cwd)
		}

		if targetDir != "." {
			if _, err := os.Stat(targetDir); err == nil {
				cobra.CheckErr(fmt.Errorf("directory %q already exists", targetDir))
			}

			err := os.MkdirAll(targetDir, 0755)
			cobra.CheckErr(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding new project %q ...\n", projectName)

		data := map[string]string{"ProjectName": projectName}

		files := map[string]string{
			"templates/index.vasc.tpl": "index.vasc",
			"templates/gitignore.tpl":  ".gitignore",
		}

		for tplPath, outName := range files {
			outPath := filepath.Join(targetDir, outName)
			writeTpl(tplPath, outPath, data)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ project %q initialized!\n", projectName)
	},
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) {
	t, err := template.ParseFS(tplFS, tplName)
	cobra.CheckErr(err)

	f, err := os.Create(outPath)
	cobra.CheckErr(err)
	defer f.Close()

	err = t.Execute(f, data)
	cobra.CheckErr(err)
}
