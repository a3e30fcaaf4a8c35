package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/config"
	"github.com/simonvc/huvudbok/internal/reporting"
	"github.com/simonvc/huvudbok/internal/server"
	"github.com/simonvc/huvudbok/internal/store"
	"github.com/simonvc/huvudbok/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const embeddedAddr = "127.0.0.1:8888"

var tuiYear int

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverAddr := flagServer

		if !remoteServerRequested(cmd, cfg) {
			// Start embedded server in background
			st, err := store.Open(flagDB)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()

			// the terminal belongs to the UI; keep the server quiet
			srv := server.New(st, reporting.NewService(st, cfg.CacheTTL), embeddedAddr, zap.NewNop())
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("embedded server error", zap.Error(err))
				}
			}()
			serverAddr = "http://" + embeddedAddr

			// Wait for server to be ready
			c := client.New(serverAddr)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				if err := c.Ping(ctx); err == nil {
					break
				}
				if ctx.Err() != nil {
					return fmt.Errorf("timeout waiting for embedded server")
				}
				time.Sleep(50 * time.Millisecond)
			}
		}

		c := client.New(serverAddr)
		app := tui.NewApp(c, tuiYear)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

// remoteServerRequested reports whether a server was given with --server,
// HUVUDBOK_SERVER or the .env file. Otherwise the UI runs its own.
func remoteServerRequested(cmd *cobra.Command, conf *config.Config) bool {
	return cmd.Flags().Changed("server") || (conf != nil && conf.ServerFromEnv)
}

func init() {
	tuiCmd.Flags().IntVar(&tuiYear, "year", time.Now().Year(), "Fiscal year to open")
	rootCmd.AddCommand(tuiCmd)
}
