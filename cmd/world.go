package cmd

import (
	"fmt"

	"rpbot/feature/road"

	"github.com/spf13/cobra"
)

var (
	worldServerID uint64
	placeName     string
	roadPlaceOne  uint64
	roadPlaceTwo  uint64
	roadDistance  uint64
)

// placeCmd is the parent command for places.
var placeCmd = &cobra.Command{
	Use:   "place",
	Short: "Manage the places of a server",
}

var placeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a place: a role and a category only that role sees",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		p, err := rt.placeService().Create(cmd.Context(), worldServerID, placeName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Place %q created: category %d, role %d\n", p.Name, p.Category.ID, p.Role.ID)
		return nil
	},
}

// roadCmd is the parent command for roads.
var roadCmd = &cobra.Command{
	Use:   "road",
	Short: "Manage the roads between places",
}

var roadCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a road between two places",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logg.Sync()

		r, err := rt.roadService().Create(cmd.Context(), road.Request{
			ServerID: worldServerID,
			PlaceOne: roadPlaceOne,
			PlaceTwo: roadPlaceTwo,
			Distance: roadDistance,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Road %q created: channel %d\n", r.Name, r.Channel.ID)
		return nil
	},
}

func init() {
	placeCreateCmd.Flags().Uint64Var(&worldServerID, "server", 0, "Server ID")
	placeCreateCmd.Flags().StringVar(&placeName, "name", "", "Place name")
	_ = placeCreateCmd.MarkFlagRequired("server")
	_ = placeCreateCmd.MarkFlagRequired("name")

	roadCreateCmd.Flags().Uint64Var(&worldServerID, "server", 0, "Server ID")
	roadCreateCmd.Flags().Uint64Var(&roadPlaceOne, "from", 0, "Category ID of the first place")
	roadCreateCmd.Flags().Uint64Var(&roadPlaceTwo, "to", 0, "Category ID of the second place")
	roadCreateCmd.Flags().Uint64Var(&roadDistance, "distance", 0, "Distance between the places")
	_ = roadCreateCmd.MarkFlagRequired("server")
	_ = roadCreateCmd.MarkFlagRequired("from")
	_ = roadCreateCmd.MarkFlagRequired("to")

	placeCmd.AddCommand(placeCreateCmd)
	roadCmd.AddCommand(roadCreateCmd)
	RootCmd.AddCommand(placeCmd, roadCmd)
}
