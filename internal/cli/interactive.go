package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsheet/internal/pipeline"
	"github.com/joseph-ayodele/docsheet/internal/session"
	"github.com/joseph-ayodele/docsheet/internal/tui"
)

func newInteractiveCmd(a *app) *cobra.Command {
	var report bool
	cmd := &cobra.Command{
		Use:     "interactive [pdf]",
		Aliases: []string{"ui"},
		Short:   "Open the terminal UI",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.processor(true)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			m := tui.New(cmd.Context(), tui.Options{
				Runner: p,
				Cache:  session.New(a.cfg.Cache.TTL, a.cfg.Cache.CleanupInterval),
				Save: pipeline.SaveOptions{
					Dir:    a.cfg.Output.Dir,
					Report: report || a.cfg.Output.WriteReport,
				},
				Path: path,
			})
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(a.out)).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&report, "report", false, "write the report file when saving")
	return cmd
}
