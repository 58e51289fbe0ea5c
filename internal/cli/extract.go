package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsheet/constants"
	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/evaluate"
	"github.com/joseph-ayodele/docsheet/internal/pipeline"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		output string
		outDir string
		report bool
		mode   string
	)
	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Extract a PDF into a scored spreadsheet",
		Long: `Extract reads one PDF, sends its text to the model once, writes the
records to structured_output_<timestamp>.xlsx and prints the score.

Example:
  docsheet extract resume.pdf
  docsheet extract resume.pdf -o resume.xlsx --report
  docsheet extract resume.pdf --mode weighted`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				mode = a.cfg.Evaluate.Mode
			}
			if err := validateMode(mode); err != nil {
				return err
			}
			if !constants.IsPDFExt(filepath.Ext(args[0])) {
				return common.NewKindError(common.KindFileIO, "not a PDF: "+args[0], common.ErrInvalidInput)
			}
			if outDir == "" {
				outDir = a.cfg.Output.Dir
			}

			p, err := a.processor(true)
			if err != nil {
				return err
			}
			res, err := p.ProcessFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts := pipeline.SaveOptions{
				Dir:    outDir,
				Path:   output,
				Report: report || a.cfg.Output.WriteReport,
			}
			if a.cfg.Output.ReportName != "" {
				opts.ReportPath = joinDir(outDir, a.cfg.Output.ReportName)
			}
			saved, err := p.SaveOutputs(res, opts)
			if err != nil {
				return err
			}

			if err := printRun(a.out, res, mode); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "\nSaved: %s\n", saved.XLSX)
			if saved.Report != "" {
				fmt.Fprintf(a.out, "Report: %s\n", saved.Report)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "spreadsheet path (default: <out-dir>/structured_output_<timestamp>.xlsx)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default: output.dir)")
	cmd.Flags().BoolVar(&report, "report", false, "also write the evaluation report file")
	cmd.Flags().StringVar(&mode, "mode", "", "score shown: standard | weighted (default: evaluate.mode)")
	return cmd
}

func printRun(w io.Writer, res *pipeline.RunResult, mode string) error {
	fmt.Fprintf(w, "Document: %s\n", res.SourcePath)
	fmt.Fprintf(w, "Fields: %d  Unique keys: %d  With comments: %d\n\n",
		res.Stats.Records, res.Stats.UniqueKeys, res.Stats.WithComments)
	if mode == "weighted" {
		return printWeighted(w, res.Weighted)
	}
	return evaluate.RenderText(w, res.Score)
}

func printWeighted(w io.Writer, r evaluate.WeightedReport) error {
	_, err := fmt.Fprintf(w,
		"Completeness: %.1f%%\nStructure:    %.1f%%\nKey quality:  %.1f%%\n\nOverall: %.1f%%  Grade: %s\n",
		r.Completeness, r.Structure, r.Keys, r.Overall, r.Grade)
	return err
}
