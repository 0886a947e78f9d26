package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "riskfuse",
	Short: "Multi-source intelligence aggregation and risk scoring for emails, IPs, domains, and packages",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real deployments set env vars directly
		_ = godotenv.Load()

		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.AddConfigPath(".")
			viper.SetConfigName(".riskfuse")
			viper.SetConfigType("yaml")
		}
		viper.SetEnvPrefix("RISKFUSE")
		viper.AutomaticEnv()

		_ = viper.ReadInConfig()

		// init logger
		var err error
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.riskfuse.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose (development) logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(factorsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
