package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/and161185/admin-console/internal/model"
	"github.com/and161185/admin-console/internal/service"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the inventory catalog",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.gate("") // any authenticated principal
		},
	}
	cmd.AddCommand(newProductsListCmd(a), newProductsAddCmd(a), newProductsRmCmd(a))
	return cmd
}

func newProductsListCmd(a *app) *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := a.inventory.List(service.Filter{
				Search:   search,
				Category: model.Category(category),
			})
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRODUCT\tCATEGORY\tPRICE\tSTOCK\tSTATUS")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%s\n",
					p.ID, p.Name, p.Category, p.Price, p.Stock, p.Status())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "substring match on name")
	cmd.Flags().StringVarP(&category, "category", "c", "All", "exact category, or All")
	return cmd
}

func newProductsAddCmd(a *app) *cobra.Command {
	var (
		name, category string
		price          float64
		stock          int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.inventory.Create(name, model.Category(category), price, stock)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created product %d (%s)\n", p.ID, p.Status())
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "product name")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Electronics, Clothing, Home or Other")
	cmd.Flags().Float64Var(&price, "price", 0, "unit price")
	cmd.Flags().IntVar(&stock, "stock", 0, "stock quantity")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newProductsRmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.inventory.Delete(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Account and inventory analytics (admin only)",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.gate(model.RoleAdmin)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "approved users:   %d\n", len(a.directory.Approved()))
			fmt.Fprintf(out, "pending requests: %d\n", len(a.directory.Pending()))

			s := a.inventory.Stats()
			fmt.Fprintf(out, "products:         %d\n", s.Products)
			fmt.Fprintf(out, "stock units:      %d\n", s.StockUnits)
			fmt.Fprintf(out, "inventory value:  %.2f\n", s.Value)
			fmt.Fprintf(out, "out of stock:     %d\n", s.OutOfStock)
			fmt.Fprintf(out, "low stock:        %d\n", s.LowStock)
			for _, c := range model.Categories {
				if n := s.PerCategory[c]; n > 0 {
					fmt.Fprintf(out, "  %-12s %d\n", string(c)+":", n)
				}
			}
			return nil
		},
	}
}
