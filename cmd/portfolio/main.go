package main

import (
	"fmt"
	"os"

	"github.com/denischpt/portfolio/internal/logging"
	"github.com/denischpt/portfolio/internal/version"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = logging.LevelWarn
	}

	// Initialize the global logger
	if err := logging.InitLogger(&logging.Config{Level: level}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Get the logger instance
	logger = logging.GetGlobalLogger()
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio CLI - contact form from the terminal",
	Long: `Portfolio CLI sends a message through the portfolio contact relay,
with the same validation and messages as the website form.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("portfolio " + version.Info())
	},
}

func init() {
	// Initialize logger first
	initLogger()

	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(versionCmd)

	contactCmd.Flags().String("name", "", "Your name (at least 2 characters)")
	contactCmd.Flags().String("email", "", "Your email address")
	contactCmd.Flags().String("message", "", "Your message (at least 5 characters)")
	contactCmd.Flags().String("endpoint", "", "Relay URL (default: CONTACT_API_URL)")
	contactCmd.Flags().String("locale", "", "Message language, fr or en (default: CONTACT_LOCALE)")

	logger.Debug("CLI commands and flags initialized")
}

func main() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}
