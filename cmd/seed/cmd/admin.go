package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alex-pricope/hackathon-judging-api/api/auth"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/alex-pricope/hackathon-judging-api/storage"
	"github.com/spf13/cobra"
)

var (
	adminID       string
	adminName     string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an administrator panelist",
	Long: `Creates a panelist with admin rights. The API only lets existing admins
create panelists, so the first one has to come from here.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStorages(cmd.Context())
		if err != nil {
			return err
		}
		id, err := seedAdmin(cmd.Context(), stores.Panelists, adminID, adminName, adminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created.\n", id)
		return nil
	},
}

func init() {
	adminCmd.Flags().StringVar(&adminID, "id", "", "panelist id (lowercased, spaces become dashes)")
	adminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	adminCmd.Flags().StringVar(&adminPassword, "password", "", "initial password")
	_ = adminCmd.MarkFlagRequired("id")
	_ = adminCmd.MarkFlagRequired("password")
}

func seedAdmin(ctx context.Context, store storage.PanelistStorage, id, name, password string) (string, error) {
	id = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "-")
	if id == "" {
		return "", errors.New("--id must not be blank")
	}
	if len(password) < auth.MinPasswordLength {
		return "", fmt.Errorf("--password must be at least %d characters", auth.MinPasswordLength)
	}
	if name == "" {
		name = id
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	now := storage.NowTimestamp()
	err = store.Create(ctx, &storage.Panelist{
		PanelistID: id,
		Name:       name,
		Password:   hash,
		IsAdmin:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
		return "", fmt.Errorf("panelist %s already exists", id)
	}
	if err != nil {
		return "", err
	}

	logging.Log.Infof("PANELIST: seeded admin %s", id)
	return id, nil
}
