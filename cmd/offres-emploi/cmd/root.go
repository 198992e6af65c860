// Package cmd implements the offres-emploi CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/emploitools/offresemploi/internal/config"
	"github.com/emploitools/offresemploi/pkg/logger"
	"github.com/emploitools/offresemploi/pkg/poleemploi"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "offres-emploi",
		Short: "Query the Pôle Emploi Offres d'emploi v2 API",
		Long: "offres-emploi is a command-line client for the Pôle Emploi\n" +
			"'Offres d'emploi v2' API from Emploi Store. It searches job offers\n" +
			"by criteria and fetches reference tables (referentiels).",
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().
		String("client-id", "", "application client ID")
	rootCmd.PersistentFlags().
		String("client-secret", "", "application client secret")
	rootCmd.PersistentFlags().
		String("token-url", "", "override the authentication endpoint")
	rootCmd.PersistentFlags().
		String("base-url", "", "override the API base URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		Bool("rate-limit", false, "pace requests to the documented 3/s bound")
	rootCmd.PersistentFlags().
		String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		String("log-format", "text", "log format (text, json)")

	for _, flag := range []string{
		"client-id", "client-secret", "token-url", "base-url",
		"output", "rate-limit", "log-level", "log-format",
	} {
		cobra.CheckErr(viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)))
	}

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(referentielCmd())
	rootCmd.AddCommand(versionCmd())
}

func initConfig() {
	viper.SetEnvPrefix("OFFRES_EMPLOI")
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}

	cfg, err := config.Load(cfgFile)
	cobra.CheckErr(err)
	fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)

	// Flags and environment variables win over file values.
	viper.SetDefault("client-id", cfg.API.ClientID)
	viper.SetDefault("client-secret", cfg.API.ClientSecret)
	viper.SetDefault("token-url", cfg.API.TokenURL)
	viper.SetDefault("base-url", cfg.API.BaseURL)
	viper.SetDefault("rate-limit", cfg.RateLimit.Enabled)
	viper.SetDefault("log-level", cfg.Logging.Level)
	viper.SetDefault("log-format", cfg.Logging.Format)
}

func newClient() (*poleemploi.Client, error) {
	clientID := viper.GetString("client-id")
	clientSecret := viper.GetString("client-secret")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf(
			"client-id and client-secret are required (flags, config file, or OFFRES_EMPLOI_* env vars)",
		)
	}

	var authOpts []poleemploi.OAuthOption
	if u := viper.GetString("token-url"); u != "" {
		authOpts = append(authOpts, poleemploi.WithTokenURL(u))
	}
	tokens := poleemploi.NewOAuthTokenProvider(clientID, clientSecret, authOpts...)

	log := logger.New(viper.GetString("log-level"), viper.GetString("log-format"))

	opts := []poleemploi.Option{poleemploi.WithLogger(log)}
	if u := viper.GetString("base-url"); u != "" {
		opts = append(opts, poleemploi.WithBaseURL(u))
	}
	if viper.GetBool("rate-limit") {
		opts = append(opts, poleemploi.WithRateLimiter(poleemploi.NewDefaultRateLimiter()))
	}

	return poleemploi.NewClient(tokens, opts...), nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
