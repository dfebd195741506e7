package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stripwm/stripwm/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Bool("pretty", false, "Styled output (default when stdout is a terminal)")
	statusCmd.Flags().Bool("plain", false, "Unstyled output")
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		return err
	}

	pretty, _ := cmd.Flags().GetBool("pretty")
	plain, _ := cmd.Flags().GetBool("plain")
	if !pretty && !plain {
		pretty = term.IsTerminal(int(os.Stdout.Fd()))
	}
	if plain {
		pretty = false
	}

	uptime := (time.Duration(status.UptimeSeconds) * time.Second).String()

	if !pretty {
		fmt.Printf("uptime: %s\n", uptime)
		fmt.Printf("managed windows: %d\n", status.ManagedWindows)
		fmt.Printf("floating windows: %d\n", status.FloatingWindows)
		fmt.Printf("processes: %d\n", status.Processes)
		for _, m := range status.Monitors {
			fmt.Printf("monitor %d (%s): %d columns, %d windows, scroll %.0f\n",
				m.ID, m.Name, m.Columns, m.Windows, m.Scroll)
		}
		return nil
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	monitorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	fmt.Println(titleStyle.Render("stripwm"))
	row := func(label string, value interface{}) {
		fmt.Println(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%v", value)))
	}
	row("uptime", uptime)
	row("managed windows", status.ManagedWindows)
	row("floating windows", status.FloatingWindows)
	row("processes", status.Processes)
	for _, m := range status.Monitors {
		fmt.Println(monitorStyle.Render(fmt.Sprintf("  %s", m.Name)) +
			valueStyle.Render(fmt.Sprintf("  %d columns, %d windows, scroll %.0f", m.Columns, m.Windows, m.Scroll)))
	}
	return nil
}
