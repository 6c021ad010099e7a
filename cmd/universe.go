package cmd

import (
	"errors"
	"fmt"

	"rpbot/feature/universe"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	universeName      string
	universeCreatorID uint64
	universeID        string
	universeServerID  uint64
)

// universeCmd is the parent command for universe management.
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Manage universes and their linked servers",
}

var universeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		u, err := rt.universeService().Create(cmd.Context(), universeName, universeCreatorID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Universe %q created: %s\n", u.Name, u.ID)
		return nil
	},
}

var universeLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link a server to a universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		if _, err := rt.universeService().LinkServer(cmd.Context(), universeID, universeServerID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Server %d linked to universe %s\n", universeServerID, universeID)
		return nil
	},
}

var universeDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a universe and every resource set up on its servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		err = rt.universeService().Delete(cmd.Context(), universeID, universeCreatorID)
		if errors.Is(err, universe.ErrCleanupIncomplete) {
			rt.logg.Warn("Universe deleted, some resources need manual cleanup", zap.Error(err))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Universe %s deleted\n", universeID)
		return nil
	},
}

func init() {
	universeCreateCmd.Flags().StringVar(&universeName, "name", "", "Universe name")
	universeCreateCmd.Flags().Uint64Var(&universeCreatorID, "creator", 0, "Creator user ID")
	_ = universeCreateCmd.MarkFlagRequired("name")
	_ = universeCreateCmd.MarkFlagRequired("creator")

	universeLinkCmd.Flags().StringVar(&universeID, "universe", "", "Universe ID")
	universeLinkCmd.Flags().Uint64Var(&universeServerID, "server", 0, "Server ID")
	_ = universeLinkCmd.MarkFlagRequired("universe")
	_ = universeLinkCmd.MarkFlagRequired("server")

	universeDeleteCmd.Flags().StringVar(&universeID, "universe", "", "Universe ID")
	universeDeleteCmd.Flags().Uint64Var(&universeCreatorID, "creator", 0, "Creator user ID")
	_ = universeDeleteCmd.MarkFlagRequired("universe")
	_ = universeDeleteCmd.MarkFlagRequired("creator")

	universeCmd.AddCommand(universeCreateCmd, universeLinkCmd, universeDeleteCmd)
	RootCmd.AddCommand(universeCmd)
}
