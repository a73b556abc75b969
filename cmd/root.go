package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/larch-c/xfbank/internal/app"
	"github.com/larch-c/xfbank/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	// The app is built before cobra parses anything, so the config flag has
	// to be pulled from the raw arguments here.
	cfgFile = resolveConfigFlag(os.Args[1:])

	if err := initConfig(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	application, cleanup, err := app.NewApp(cfg)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	defer cleanup()

	rootCmd := &cobra.Command{
		Use:           "xfbank",
		Short:         "xfbank is a simulated bank driven by chat commands",
		Long:          `xfbank is a simulated bank driven by chat commands`,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", cfgFile, "set the config file path")

	rootCmd.AddCommand(NewOpenCmd(application))
	rootCmd.AddCommand(NewBalanceCmd(application))
	rootCmd.AddCommand(NewCheckinCmd(application))
	rootCmd.AddCommand(NewTransferCmd(application))
	rootCmd.AddCommand(NewRecordCmd(application))
	rootCmd.AddCommand(NewChatCmd(application))
	rootCmd.AddCommand(NewServeCmd(application))

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(capitalize(err.Error()))
		os.Exit(1)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := getAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	if err := createDefaultConfig(); err != nil {
		return fmt.Errorf("failed to ensure config file: %w", err)
	}

	viper.SetEnvPrefix("XFBANK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

func setDefaults() {
	def := config.NewDefault()
	viper.SetDefault("data.path", def.Data.Path)
	viper.SetDefault("server.addr", def.Server.Addr)
	viper.SetDefault("persist.flush_interval", def.Persist.FlushInterval)
	viper.SetDefault("limits.transfer_max", def.Limits.TransferMax)
	viper.SetDefault("limits.checkin_min", def.Limits.CheckinMin)
	viper.SetDefault("limits.checkin_max", def.Limits.CheckinMax)
	viper.SetDefault("interbank.timeout", def.Interbank.Timeout)
	viper.SetDefault("interbank.delay", def.Interbank.Delay)
}

// resolveConfigFlag extracts the --config/-c value from raw arguments.
// Returns the last occurrence, matching flag-parse behavior.
func resolveConfigFlag(args []string) string {
	var path string
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				path = args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			path = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c="):
			path = strings.TrimPrefix(arg, "-c=")
		}
	}
	return path
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".xfbank"), nil
	}

	return filepath.Join(configDir, "xfbank"), nil
}

func createDefaultConfig() error {
	appDir, err := getAppDataDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
