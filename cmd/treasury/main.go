package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/aussiebroadwan/treasury/internal/treasury/app"
)

const programName = "treasury"

var (
	configFile string
	cfg        app.Config
)

func slogPrintf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), "component", programName)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Chapter treasury service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveRun,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"path to a YAML config file (env: "+app.ConfigFileEnv+")")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "keygen" {
			return nil
		}
		loaded, err := app.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.SetDefault(app.NewLogger(cfg))
		return nil
	}

	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		statusCommand(),
		createUserCommand(),
		keygenCommand(),
		calendarCommand(),
		versionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  serveRun,
	}
}

func serveRun(_ *cobra.Command, _ []string) error {
	if _, err := maxprocs.Set(maxprocs.Logger(slogPrintf)); err != nil {
		return fmt.Errorf("set GOMAXPROCS: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", programName, app.BuildVersion)
		},
	}
}
