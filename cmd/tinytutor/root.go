package main

import (
	"github.com/spf13/cobra"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

var (
	cfgFile  string
	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "tinytutor",
	Short: "Tiny Tutor API",
	Long: `Tiny Tutor serves word explanations, quizzes, learning streaks and
generated mini-games to the Tiny Tutor web app.

Settings come from an optional config file and environment variables
(DATABASE_DSN, JWT_SECRET, GEMINI_API_KEY, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		config.InitLogger(s.LogLevel, s.LogFormat)
		settings = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml if present)",
	)
}
