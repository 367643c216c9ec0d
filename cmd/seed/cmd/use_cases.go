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

var useCasesFile string

var useCasesCmd = &cobra.Command{
	Use:   "use-cases",
	Short: "Load use cases from a YAML file",
	Long: `Writes every use case in the file, replacing records with the same id.
sort_order defaults to the id and active defaults to true.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStorages(cmd.Context())
		if err != nil {
			return err
		}
		count, err := seedUseCases(cmd.Context(), stores.UseCases, useCasesFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Done! %d use cases seeded.\n", count)
		return nil
	},
}

func init() {
	useCasesCmd.Flags().StringVar(&useCasesFile, "file", "seeds/use_cases.yaml", "YAML file with a use_cases list")
}

type useCasesSeed struct {
	UseCases []*storage.UseCase `yaml:"use_cases"`
}

func seedUseCases(ctx context.Context, store storage.UseCaseStorage, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var seed useCasesSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	now := storage.NowTimestamp()
	for i, uc := range seed.UseCases {
		if uc.UseCaseID <= 0 || uc.Name == "" {
			return i, fmt.Errorf("use case #%d in %s needs a positive use_case_id and a name", i+1, path)
		}
		if uc.SortOrder == nil {
			order := uc.UseCaseID
			uc.SortOrder = &order
		}
		if uc.Active == nil {
			active := true
			uc.Active = &active
		}
		if uc.Challenges == nil {
			uc.Challenges = []string{}
		}
		if uc.Values == nil {
			uc.Values = []string{}
		}
		uc.CreatedAt, uc.UpdatedAt = now, now

		if err := store.Put(ctx, uc); err != nil {
			return i, err
		}
		logging.Log.Infof("USECASE: seeded %d. %s", uc.UseCaseID, uc.Name)
	}
	return len(seed.UseCases), nil
}
