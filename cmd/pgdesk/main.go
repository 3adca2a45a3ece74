// Command pgdesk is a terminal workspace for PostgreSQL: pick a database and
// schema, browse its tables and open saved consoles.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/pgdesk/internal/app"
	"github.com/rebeliceyang/pgdesk/internal/config"
	"github.com/rebeliceyang/pgdesk/internal/credentials"
	"github.com/rebeliceyang/pgdesk/internal/db/connection"
	"github.com/rebeliceyang/pgdesk/internal/db/discovery"
	"github.com/rebeliceyang/pgdesk/internal/db/metadata"
	"github.com/rebeliceyang/pgdesk/internal/history"
	"github.com/rebeliceyang/pgdesk/internal/i18n"
	"github.com/rebeliceyang/pgdesk/internal/logging"
	"github.com/rebeliceyang/pgdesk/internal/store"
	"github.com/rebeliceyang/pgdesk/internal/tree"
	"github.com/spf13/cobra"
)

var (
	configFile     string
	connectionName string
)

// rootCmd starts the workspace when called without a subcommand
var rootCmd = &cobra.Command{
	Use:           "pgdesk",
	Short:         "Terminal workspace for PostgreSQL",
	Long:          "Browse the databases, schemas and tables of a PostgreSQL server and keep saved consoles next to them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkspace(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&connectionName, "connection", "c", "", "Alias or id of the connection to open")

	setupCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file with the persistent flags bound on top.
// A connection described by PG* variables is listed after the configured ones.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg.Connections = discovery.AppendEnvironment(cfg.Connections, nil)
	return cfg, nil
}

func openLogger(cfg *config.Config) (*log.Logger, func(), error) {
	logger, closer, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

func runWorkspace(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	consoles, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = consoles.Close() }()

	manager := connection.NewManager(
		connection.PoolOptions{MaxConns: int32(cfg.Performance.ConnectionPoolSize)},
		credentials.NewStore(),
		logger,
	)
	defer manager.Close()

	catalog := metadata.NewCatalog(manager, cfg.Performance.MetadataConcurrency, logger)
	st := store.New(store.Services{Consoles: consoles, Schemas: catalog}, logger)

	zone.NewGlobal()

	model := app.New(app.Options{
		Config:     cfg,
		Store:      st,
		Connector:  manager,
		Tree:       tree.NewConfig(manager),
		Translator: i18n.New(cfg.General.Language),
		Logger:     logger,
	})
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info("starting", "config", configFile, "connections", len(cfg.Connections))
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
