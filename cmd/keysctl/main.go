package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/michaelquigley/keysctl"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "keysctl <playback|capture|backlight> <toggle|percent-change>",
	Short: "Handle multimedia keys for audio and backlight",
	Long: `keysctl performs one multimedia key action and exits. It toggles or
adjusts playback and capture through the default simple mixer elements, adjusts
the screen backlight, and signals the status bar so it can redraw the field
that changed.

Examples:
  keysctl playback toggle
  keysctl playback +5
  keysctl capture -10
  keysctl backlight 10`,
	Version:   keysctl.RuntimeVersion(),
	Args:      validateArgs,
	ValidArgs: keysctl.Functions,
	RunE: func(cmd *cobra.Command, args []string) error {
		// past argument validation, failures are not usage errors
		cmd.SilenceUsage = true

		keys, err := newKeys()
		if err != nil {
			return err
		}
		return keys.Run(args[0], args[1])
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show playback, capture and backlight levels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		keys, err := newKeys()
		if err != nil {
			return err
		}

		st, err := keys.ReadStatus()
		fmt.Printf("playback:  %3d%% [%s]\n", st.Playback, st.PlaybackMute)
		fmt.Printf("capture:   %3d%% [%s]\n", st.Capture, st.CaptureMute)
		fmt.Printf("backlight: %3d%%\n", st.Backlight)
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(keysctl.RuntimeVersion())
	},
}

// validateArgs requires a known function and one parameter
func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	for _, fn := range keysctl.Functions {
		if args[0] == fn {
			return nil
		}
	}
	return fmt.Errorf("invalid function '%s' (use %s)", args[0], strings.Join(keysctl.Functions, "|"))
}

func newKeys() (*keysctl.Keys, error) {
	cfg, err := keysctl.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log := keysctl.NewLogger(keysctl.ParseLevel(cfg.LogLevel))
	return keysctl.NewKeys(cfg, log)
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", keysctl.DefaultConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (panic, fatal, error, warning, info, debug, trace)")

	// stop flag parsing at the function name so "-5" is a value
	rootCmd.Flags().SetInterspersed(false)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
