package cmd

import (
	"github.com/simonvc/huvudbok/internal/config"
	"github.com/simonvc/huvudbok/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagServer string
	flagDB     string
	flagDebug  bool
	flagEnv    string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "huvudbok",
	Short: "Swedish double-entry bookkeeping with statutory reports",
	Long: "A double-entry bookkeeping ledger on the BAS chart of accounts, backed by SQLite.\n" +
		"Produces the balance sheet (balansräkning), income statement (resultaträkning)\n" +
		"and VAT return (momsdeklaration).",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(flagEnv); err != nil {
			return err
		}

		// flags win over the environment
		if !cmd.Flags().Changed("server") {
			flagServer = cfg.ServerURL
		}
		if !cmd.Flags().Changed("db") {
			flagDB = cfg.DBPath
		}
		if !cmd.Flags().Changed("debug") {
			flagDebug = cfg.Debug
		}

		level := cfg.LogLevel
		if flagDebug {
			level = "debug"
		}
		log, err = logger.New(level, flagDebug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8888", "Server address (HUVUDBOK_SERVER)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "huvudbok.db", "SQLite database path (HUVUDBOK_DB)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging (HUVUDBOK_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "Load settings from this .env file")
}

func Execute() error {
	return rootCmd.Execute()
}
