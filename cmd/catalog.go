package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smartstore/store-system/internal/client"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage products",
}

var productsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		product, err := newClient().GetProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, product)
	},
}

var productReq client.ProductRequest

var productsCreateCmd = &cobra.Command{
	Use:   "create ID",
	Short: "Provision a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := productReq
		req.ID = args[0]
		product, err := newClient().CreateProduct(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd, product)
	},
}

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customers",
}

var customersGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customer, err := newClient().GetCustomer(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, customer)
	},
}

var customerReq client.CustomerRequest

var customersCreateCmd = &cobra.Command{
	Use:   "create ID",
	Short: "Provision a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := customerReq
		req.ID = args[0]
		customer, err := newClient().CreateCustomer(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd, customer)
	},
}

func init() {
	rootCmd.AddCommand(productsCmd, customersCmd)
	productsCmd.AddCommand(productsGetCmd, productsCreateCmd)
	customersCmd.AddCommand(customersGetCmd, customersCreateCmd)

	pf := productsCreateCmd.Flags()
	pf.StringVar(&productReq.Name, "name", "", "product name")
	pf.StringVar(&productReq.Description, "description", "", "product description")
	pf.StringVar(&productReq.Size, "size", "", "product size")
	pf.StringVar(&productReq.Category, "category", "", "product category")
	pf.Float64Var(&productReq.Price, "price", 0, "unit price")
	pf.StringVar(&productReq.Temperature, "temperature", "ambient", "frozen, refrigerated, ambient, warm or hot")
	_ = productsCreateCmd.MarkFlagRequired("name")

	cf := customersCreateCmd.Flags()
	cf.StringVar(&customerReq.FirstName, "first-name", "", "first name")
	cf.StringVar(&customerReq.LastName, "last-name", "", "last name")
	cf.StringVar(&customerReq.Type, "type", "guest", "guest or registered")
	cf.StringVar(&customerReq.Email, "customer-email", "", "contact email for registered customers")
	cf.StringVar(&customerReq.AccountAddress, "account-address", "", "account address")
	_ = customersCreateCmd.MarkFlagRequired("first-name")
	_ = customersCreateCmd.MarkFlagRequired("last-name")
}
