package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stripwm/stripwm/internal/ipc"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows tracked by the daemon",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().Bool("managed", false, "Only show windows tiled into a strip")
}

func runWindows(cmd *cobra.Command, args []string) error {
	client := ipc.NewClient()
	data, err := client.GetWindows()
	if err != nil {
		return err
	}

	managedOnly, _ := cmd.Flags().GetBool("managed")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAPP\tPID\tMONITOR\tSTATE\tGEOMETRY")
	for _, win := range data.Windows {
		if managedOnly && !win.Managed {
			continue
		}
		state := "floating"
		if win.Managed {
			state = "tiled"
		}
		if win.Focused {
			state += "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%.0fx%.0f+%.0f+%.0f\n",
			win.ID, win.App, win.PID, win.Monitor, state,
			win.Width, win.Height, win.X, win.Y)
	}
	return w.Flush()
}
