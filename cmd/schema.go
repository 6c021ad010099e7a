package cmd

import (
	"fmt"

	"rpbot/core/database"
	placeModels "rpbot/feature/place/models"
	roadModels "rpbot/feature/road/models"
	setupModels "rpbot/feature/setup/models"
	universeModels "rpbot/feature/universe/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateFlag bool

// schemaCmd checks that the database holds the tables the stores need.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema",
	Long:  `Compares the server_configs, universes, places and roads tables against the columns the stores use. With --migrate, creates or updates them first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		if migrateFlag {
			rt.logg.Info("Migrating schema...")
			if err := rt.migrate(); err != nil {
				return err
			}
		}

		tables := map[string][]string{
			setupModels.ServerConfig{}.TableName(): setupModels.RequiredColumns(),
			universeModels.Universe{}.TableName():  universeModels.RequiredColumns(),
			placeModels.Place{}.TableName():        placeModels.RequiredColumns(),
			roadModels.Road{}.TableName():          roadModels.RequiredColumns(),
		}

		mismatched := 0
		for table, columns := range tables {
			missing, err := database.MissingColumns(rt.db, table, columns)
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", table, err)
			}
			if len(missing) > 0 {
				mismatched++
				rt.logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", missing))
				continue
			}
			rt.logg.Info("Table matches expected definition.", zap.String("table", table))
		}

		if mismatched > 0 {
			return fmt.Errorf("%d table(s) do not match, run with --migrate", mismatched)
		}
		return nil
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&migrateFlag, "migrate", false, "Create or update the tables before checking")
	RootCmd.AddCommand(schemaCmd)
}
