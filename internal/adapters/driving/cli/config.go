package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved configuration",
	Long: `Prints every configuration key with its effective value. Values not set
in config.toml show their default. Flags such as --root are not reflected.`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Validate and save one configuration value",
	Long: `Saves a value to config.toml. The value is checked first: disposal.policy
must be archive or delete and server.max_upload_mb a positive integer.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func requireConfig() (*Services, error) {
	svc, err := requireServices()
	if err != nil {
		return nil, err
	}
	if svc.Config == nil {
		return nil, errors.New("config service not configured")
	}
	return svc, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireConfig()
	if err != nil {
		return err
	}

	cmd.Printf("# %s\n", svc.Config.Path())
	for _, key := range svc.Config.Keys() {
		value, err := svc.Config.Get(key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", key, err)
		}
		cmd.Printf("%-22s = %s\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	svc, err := requireConfig()
	if err != nil {
		return err
	}

	value, err := svc.Config.Get(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireConfig()
	if err != nil {
		return err
	}

	if err := svc.Config.Set(args[0], args[1]); err != nil {
		return err
	}
	value, err := svc.Config.Get(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s (saved to %s)\n", args[0], value, svc.Config.Path())
	return nil
}
