package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var criteriaFile string

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Load the judging criteria from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStorages(cmd.Context())
		if err != nil {
			return err
		}
		if err := seedCriteria(cmd.Context(), stores.Criteria, criteriaFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Done! Judging criteria seeded.")
		return nil
	},
}

func init() {
	criteriaCmd.Flags().StringVar(&criteriaFile, "file", "seeds/judging_criteria.yaml", "YAML file with the criteria document")
}

func seedCriteria(ctx context.Context, store storage.JudgingCriteriaStorage, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var criteria storage.JudgingCriteria
	if err := yaml.Unmarshal(raw, &criteria); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	criteria.UpdatedAt = storage.NowTimestamp()

	if err := store.Put(ctx, &criteria); err != nil {
		return err
	}
	logging.Log.Info("CRITERIA: seeded judging criteria")
	return nil
}
