package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alex-pricope/hackathon-judging-api/api"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global flags
	configPath string
	logLevel   string

	// openStorages is replaced in tests.
	openStorages = func(ctx context.Context) (*api.Storages, error) {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return api.NewDynamoStorages(dynamodb.NewFromConfig(cfg), api.ReadStorageConfig()), nil
	}

	rootCmd = &cobra.Command{
		Use:   "seed",
		Short: "Seed the hackathon tables",
		Long: `seed writes reference data into the hackathon DynamoDB tables.

Table names come from config.yaml (or --config) and environment variables,
the same way the API resolves them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ./config.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(useCasesCmd)
	rootCmd.AddCommand(criteriaCmd)
	rootCmd.AddCommand(adminCmd)
}

func loadConfig() error {
	logging.BoostrapLogger(logLevel, false)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	api.SetDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}
