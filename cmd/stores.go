package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smartstore/store-system/internal/client"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Manage stores",
}

var storesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := newClient().ListStores(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, stores)
	},
}

var storesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newClient().GetStore(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, store)
	},
}

var storeReq client.StoreRequest

var storesCreateCmd = &cobra.Command{
	Use:   "create ID",
	Short: "Provision a store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := storeReq
		req.ID = args[0]
		store, err := newClient().CreateStore(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd, store)
	},
}

var storesUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a store's description or address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newClient().UpdateStore(cmd.Context(), args[0], storeReq)
		if err != nil {
			return err
		}
		return printJSON(cmd, store)
	},
}

var storesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().DeleteStore(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(storesCmd)
	storesCmd.AddCommand(storesListCmd, storesGetCmd, storesCreateCmd, storesUpdateCmd, storesDeleteCmd)

	for _, c := range []*cobra.Command{storesCreateCmd, storesUpdateCmd} {
		c.Flags().StringVar(&storeReq.Description, "description", "", "store description")
		c.Flags().StringVar(&storeReq.Address, "address", "", "store address")
	}
}
