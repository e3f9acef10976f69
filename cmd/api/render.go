package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/shared/config"
)

var (
	renderUserID   string
	renderTemplate string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a stored resume into an HTML template",
	Example: `  api render --user 6f1c... --template template1 --out resume.html
  api render --user 6f1c... --template template2 > resume.html`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderUserID, "user", "", "Account id whose resume to render (required)")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "template1", "Template key")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (defaults to stdout)")
	_ = renderCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	app, err := bootstrap.Build(config.Load())
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer app.Close()

	tpl, err := app.Catalog.Get(renderTemplate)
	if err != nil {
		return fmt.Errorf("template %q: %w", renderTemplate, err)
	}
	rec, err := app.ResumeService.Get(cmd.Context(), renderUserID)
	if err != nil {
		return fmt.Errorf("load resume: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return tpl.Render(w, rec, app.Config.PublicBaseURL)
}
