package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rebeliceyang/pgdesk/internal/config"
	"github.com/rebeliceyang/pgdesk/internal/credentials"
	"github.com/rebeliceyang/pgdesk/internal/db/discovery"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// connectionsCmd represents the connections command
var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Inspect configured connections",
}

var connectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		pgpass := discovery.PgPass{}
		if path, err := discovery.DefaultPgPassPath(); err == nil {
			if pgpass, err = discovery.LoadPgPass(path); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", err)
			}
		}
		return printConnections(cmd.OutOrStdout(), cfg, credentials.NewStore(), pgpass)
	},
}

var connectionsSetPasswordCmd = &cobra.Command{
	Use:   "set-password [alias]",
	Short: "Store the password of a connection in the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		conn, ok := cfg.FindConnection(args[0])
		if !ok {
			return fmt.Errorf("unknown connection %q", args[0])
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Password for %s: ", conn.Alias)
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if err := credentials.NewStore().Save(conn.ID, strings.TrimSpace(string(password))); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved password for %s\n", conn.Alias)
		return nil
	},
}

type passwordLookup interface {
	Get(connectionID string) (string, error)
}

// printConnections shows where each connection's password comes from
func printConnections(w io.Writer, cfg *config.Config, passwords passwordLookup, pgpass discovery.PgPass) error {
	if len(cfg.Connections) == 0 {
		_, err := fmt.Fprintln(w, "No connections configured.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALIAS\tADDRESS\tDATABASE\tUSER\tPASSWORD\tDEFAULT")
	for _, c := range cfg.Connections {
		password := "config"
		if c.Password == "" {
			_, err := passwords.Get(c.ID)
			switch {
			case err == nil:
				password = "keyring"
			case errors.Is(err, credentials.ErrPasswordNotFound):
				password = "-"
				if _, ok := pgpass.Lookup(c); ok {
					password = "pgpass"
				}
			default:
				password = "unavailable"
			}
		}
		def := ""
		if c.Alias == cfg.General.DefaultConnection || c.ID == cfg.General.DefaultConnection {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s:%d\t%s\t%s\t%s\t%s\n", c.Alias, c.Host, c.Port, c.Database, c.User, password, def)
	}
	return tw.Flush()
}
