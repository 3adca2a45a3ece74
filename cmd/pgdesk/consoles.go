package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rebeliceyang/pgdesk/internal/config"
	"github.com/rebeliceyang/pgdesk/internal/export"
	"github.com/rebeliceyang/pgdesk/internal/history"
	"github.com/rebeliceyang/pgdesk/internal/models"
	"github.com/spf13/cobra"
)

// consolesCmd represents the consoles command
var consolesCmd = &cobra.Command{
	Use:   "consoles",
	Short: "Manage saved consoles",
	Long:  "Commands for listing, saving, deleting, exporting and importing the saved consoles shown in the sidebar.",
}

var consolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved consoles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsoles(cmd, func(ctx context.Context, cfg *config.Config, s *history.Store) error {
			if text, _ := cmd.Flags().GetString("search"); text != "" {
				limit, _ := cmd.Flags().GetInt("limit")
				list, err := s.Search(ctx, text, limit)
				if err != nil {
					return err
				}
				return printConsoles(cmd.OutOrStdout(), cfg, list)
			}

			q := models.ConsoleQuery{}
			if v, _ := cmd.Flags().GetString("status"); v != "" {
				status, err := models.ParseConsoleStatus(v)
				if err != nil {
					return err
				}
				q.Status = status
			}
			if v, _ := cmd.Flags().GetString("data-source"); v != "" {
				q.DataSourceID = dataSourceID(cfg, v)
			}
			q.DatabaseName, _ = cmd.Flags().GetString("database")
			q.SchemaName, _ = cmd.Flags().GetString("schema")

			list, err := s.ListSavedConsoles(ctx, q)
			if err != nil {
				return err
			}
			return printConsoles(cmd.OutOrStdout(), cfg, list)
		})
	},
}

var consolesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a query as a console",
	Long:  "Save a query read from --file or stdin as a console of the connection given by --connection.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConsoles(cmd, func(ctx context.Context, cfg *config.Config, s *history.Store) error {
			name, _ := cmd.Flags().GetString("name")
			file, _ := cmd.Flags().GetString("file")
			draft, _ := cmd.Flags().GetBool("draft")

			ddl, err := readQuery(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			c := models.Console{
				Name:   name,
				DDL:    ddl,
				Type:   models.DatabaseTypePostgreSQL,
				Status: models.ConsoleStatusRelease,
			}
			if draft {
				c.Status = models.ConsoleStatusDraft
			}
			if cfg.General.DefaultConnection != "" {
				c.DataSourceID = dataSourceID(cfg, cfg.General.DefaultConnection)
			}
			c.DatabaseName, _ = cmd.Flags().GetString("database")
			c.SchemaName, _ = cmd.Flags().GetString("schema")

			id, err := s.SaveConsole(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved console %d\n", id)
			return nil
		})
	},
}

var consolesDeleteCmd = &cobra.Command{
	Use:   "delete [console-id]",
	Short: "Delete a saved console",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid console id %q", args[0])
		}
		return withConsoles(cmd, func(ctx context.Context, _ *config.Config, s *history.Store) error {
			if err := s.DeleteConsole(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted console %d\n", id)
			return nil
		})
	},
}

var consolesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all saved consoles to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(v)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")

		return withConsoles(cmd, func(ctx context.Context, _ *config.Config, s *history.Store) error {
			list, err := s.All(ctx)
			if err != nil {
				return err
			}
			if err := export.Export(format, list, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d consoles to %s\n", len(list), out)
			return nil
		})
	},
}

var consolesImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import consoles from a json or yaml file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := export.ImportFromFile(args[0])
		if err != nil {
			return err
		}
		return withConsoles(cmd, func(ctx context.Context, _ *config.Config, s *history.Store) error {
			for _, c := range list {
				if _, err := s.SaveConsole(ctx, c); err != nil {
					return fmt.Errorf("failed to import %q: %w", c.Name, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d consoles\n", len(list))
			return nil
		})
	},
}

// withConsoles opens the console database for the duration of fn
func withConsoles(cmd *cobra.Command, fn func(context.Context, *config.Config, *history.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return fn(cmd.Context(), cfg, s)
}

// dataSourceID maps a connection alias to its id; unknown values pass through
func dataSourceID(cfg *config.Config, aliasOrID string) string {
	if conn, ok := cfg.FindConnection(aliasOrID); ok {
		return conn.ID
	}
	return aliasOrID
}

func readQuery(stdin io.Reader, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read query: %w", err)
	}
	return string(data), nil
}

func printConsoles(w io.Writer, cfg *config.Config, list []models.Console) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No consoles found.")
		return err
	}

	aliases := make(map[string]string, len(cfg.Connections))
	for _, c := range cfg.Connections {
		aliases[c.ID] = c.Alias
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCONNECTION\tDATABASE\tSCHEMA\tUPDATED")
	for _, c := range list {
		conn := aliases[c.DataSourceID]
		if conn == "" {
			conn = c.DataSourceID
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Status, conn, c.DatabaseName, c.SchemaName, humanize.Time(c.UpdatedAt))
	}
	return tw.Flush()
}
