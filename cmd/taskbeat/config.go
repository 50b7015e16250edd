package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhutton/taskbeat/internal/config"
)

func newConfigCmd() *cobra.Command {
	var initConfig bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration paths and effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if initConfig {
				paths := config.ConfigPaths()
				if len(paths) == 0 {
					return fmt.Errorf("cannot determine home directory")
				}
				if err := config.WriteExample(paths[0]); err != nil {
					return fmt.Errorf("failed to write example config: %w", err)
				}
				fmt.Printf("Wrote example config to %s\n", paths[0])
				return nil
			}

			cfg, err := config.Get()
			if err != nil {
				return err
			}

			fmt.Println("Config search paths:")
			for _, p := range config.ConfigPaths() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println()
			fmt.Printf("redis_url:     %s\n", cfg.RedisURL)
			fmt.Printf("jira.base_url: %s\n", cfg.Jira.BaseURL)
			fmt.Printf("jira.email:    %s\n", cfg.Jira.Email)
			fmt.Printf("logging.level: %s\n", cfg.Logging.Level)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initConfig, "init", false, "Write an example config file")

	return cmd
}
