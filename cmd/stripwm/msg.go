package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stripwm/stripwm/internal/ipc"
)

var msgCmd = &cobra.Command{
	Use:   "msg <command>...",
	Short: "Send a command to the running daemon",
	Long: `Send an argv-style command to the daemon, e.g.:

  stripwm msg window focus west
  stripwm msg window swap east
  stripwm msg window resize 0.5
  stripwm msg window stack east
  stripwm msg window center
  stripwm msg quit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMsg,
}

func init() {
	rootCmd.AddCommand(msgCmd)
}

func runMsg(cmd *cobra.Command, args []string) error {
	client := ipc.NewClient()
	if err := client.Exec(args); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}
