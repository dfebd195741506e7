package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stripwm/stripwm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file for errors",
	RunE:  runConfigValidate,
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration as YAML",
	RunE:  runConfigPrint,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPrintCmd)
}

func loadConfigForCmd(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		return cfg, path, err
	}
	cfg, err := config.Load()
	resolved, perr := config.DefaultConfigPath()
	if perr == nil {
		path = resolved
	}
	return cfg, path, err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	_, path, err := loadConfigForCmd(cmd)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		fmt.Printf("no config file at %s, defaults apply\n", path)
		return nil
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}

func runConfigPrint(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfigForCmd(cmd)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}
