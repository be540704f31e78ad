// Package cli is the thin orchestration surface over the reader core: it
// selects platforms, fans fetches out concurrently, and prints canonical
// records as JSON. Platform failures are isolated: one unreadable store
// is logged and the remaining platforms still report.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"chatsource/pkg/config"
	"chatsource/pkg/logger"
	"chatsource/pkg/models"
	"chatsource/pkg/reader"
)

var (
	cfgPath       string
	sinceDur      time.Duration
	platformsFlag []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatsource",
	Short: "Read local messenger stores into canonical messages and threads",
	Long: `chatsource reads the on-disk stores of local messaging clients
(iMessage, WhatsApp, Signal) and normalizes them into one canonical
message and thread model.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file path (defaults target a stock macOS install)")
	rootCmd.PersistentFlags().DurationVar(&sinceDur, "since", 24*time.Hour, "fetch messages newer than now minus this duration")
	rootCmd.PersistentFlags().StringSliceVar(&platformsFlag, "platforms",
		[]string{"imessage", "whatsapp", "signal"}, "platforms to read")

	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(threadsCmd)
}

// loadConfig resolves the effective config: file (when given) over
// defaults, env overrides on top, and re-inits logging at the configured
// level.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
	}
	config.LoadEnvOverrides(cfg)
	logger.InitWithLevel(cfg.Logging.Level)
	return cfg, nil
}

// newReader builds the reader instance for one configured platform.
func newReader(cfg *config.Config, p models.Platform) (*reader.Reader, error) {
	path, err := cfg.StorePath(p)
	if err != nil {
		return nil, err
	}
	switch p {
	case models.PlatformIMessage:
		return reader.NewIMessage(path), nil
	case models.PlatformWhatsApp:
		return reader.NewWhatsApp(path), nil
	case models.PlatformSignal:
		return reader.NewSignal(path), nil
	default:
		return nil, fmt.Errorf("unknown platform: %s", p)
	}
}
