package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "crewboard" command. Running it with no
// subcommand launches the board TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "crewboard",
		Short: "Labor scheduling board",
		Long:  "crewboard reconciles role requirements against assigned workers on a day/week/month scheduling board.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(app)
		},
	}
	root.AddCommand(
		newWorkerCmd(app),
		newJobCmd(app),
		newSeedCmd(app),
	)
	return root
}

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample workers, jobs and shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Seed == nil {
				return fmt.Errorf("seeding is not wired")
			}
			if err := app.Seed(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "sample data inserted")
			return nil
		},
	}
}

func runBoard(app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("the board needs an interactive terminal")
	}
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newWorkerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Worker directory",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := app.Workers.List(context.Background())
			if err != nil {
				return err
			}
			for _, w := range workers {
				avail := "available"
				if !w.Available {
					avail = "unavailable"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d%%\t%d shifts\t%s\n",
					w.ID, w.Name, w.DefaultRole(), w.AvailabilityScore,
					w.CurrentShiftsCount, avail)
			}
			return nil
		},
	})
	return cmd
}

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Job directory",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := app.Jobs.List(context.Background())
			if err != nil {
				return err
			}
			for _, j := range jobs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					j.ID, j.Name, strings.TrimSpace(j.ClientName))
			}
			return nil
		},
	})
	return cmd
}
