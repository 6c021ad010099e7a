package cmd

import (
	"fmt"
	"os"

	"rpbot/core/i18n"
	"rpbot/core/storage"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// i18nCmd is the parent command for translation catalogs.
var i18nCmd = &cobra.Command{
	Use:   "i18n",
	Short: "Manage translation catalogs",
}

var i18nPushCmd = &cobra.Command{
	Use:   "push <locale> <file.json>",
	Short: "Upload the catalog of a locale",
	Long:  `Uploads a flat JSON object of translation keys to the storage bucket, replacing the current catalog of that locale.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		locale, file := args[0], args[1]

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read catalog: %w", err)
		}
		var catalog i18n.Catalog
		if err := json.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("invalid catalog %s: %w", file, err)
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		if err := storage.EnsureBucket(cmd.Context(), rt.objects, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
			return err
		}
		if err := rt.translator.Publish(cmd.Context(), locale, catalog); err != nil {
			return err
		}
		rt.logg.Info("Catalog published", zap.String("locale", locale), zap.Int("keys", len(catalog)))
		return nil
	},
}

var i18nListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the locales with a catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		locales, err := rt.translator.Locales(cmd.Context())
		if err != nil {
			return err
		}
		for _, l := range locales {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

func init() {
	i18nCmd.AddCommand(i18nPushCmd, i18nListCmd)
	RootCmd.AddCommand(i18nCmd)
}
