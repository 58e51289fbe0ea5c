package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsheet/internal/evaluate"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		reportPath string
		mode       string
	)
	cmd := &cobra.Command{
		Use:   "evaluate <xlsx> <pdf>",
		Short: "Score an existing spreadsheet against its source PDF",
		Long: `Evaluate reads a generated workbook (sheet "Output", or the first sheet)
and the PDF it came from, and scores the workbook. It never calls the model
and needs no API key.

Example:
  docsheet evaluate Output.xlsx Sample_Data_Input.pdf
  docsheet evaluate Output.xlsx input.pdf --report evaluation_report.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				mode = a.cfg.Evaluate.Mode
			}
			if err := validateMode(mode); err != nil {
				return err
			}
			p, err := a.processor(false)
			if err != nil {
				return err
			}
			res, err := p.EvaluateFiles(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := printRun(a.out, res, mode); err != nil {
				return err
			}
			if reportPath != "" {
				if err := evaluate.WriteReportFile(reportPath, res.Score, args[1], args[0], p.Now()); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "\nReport saved to: %s\n", filepath.Clean(reportPath))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reportPath, "report", "", "write the report file to this path")
	cmd.Flags().StringVar(&mode, "mode", "", "score shown: standard | weighted")
	return cmd
}
