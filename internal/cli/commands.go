package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"costumes_back_end/internal/models"
	"costumes_back_end/internal/utils"
)

func NewProductsCommand(opts *RootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Lister les produits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			products := s.Products()
			if category != "" {
				products = s.ProductsByCategory(category)
			}
			return opts.printProducts(cmd.OutOrStdout(), products)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "filtrer par catégorie (ou \"promotions\")")
	return cmd
}

func NewRecommendedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recommended",
		Short: "Afficher les 4 produits recommandés",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()
			return opts.printProducts(cmd.OutOrStdout(), s.Recommended())
		},
	}
}

func NewOrdersCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Lister les commandes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()
			return opts.printOrders(cmd.OutOrStdout(), s.Orders())
		},
	}
}

func NewOrderStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "order-status <id> <pending|completed|cancelled>",
		Short: "Changer le statut d'une commande",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			id, status := args[0], models.OrderStatus(args[1])
			found, err := s.UpdateOrderStatus(id, status)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("commande %s introuvable", id)
			}
			order, _ := s.Order(id)
			return opts.printOrders(cmd.OutOrStdout(), []models.Order{order})
		},
	}
}

func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <mot de passe>",
		Short: "Générer un hash Argon2id pour ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return errors.New("mot de passe vide")
			}
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return fmt.Errorf("hash du mot de passe: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func (o *RootOptions) printProducts(w io.Writer, products []models.Product) error {
	if o.Format == "json" {
		return o.writeJSON(w, products)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tCATÉGORIE\tPRIX\tSCORE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f MAD\t%d\n", p.ID, p.Name, p.Category, p.Price, p.Score)
	}
	return tw.Flush()
}

func (o *RootOptions) printOrders(w io.Writer, orders []models.Order) error {
	if o.Format == "json" {
		return o.writeJSON(w, orders)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tDATE\tTOTAL\tSTATUT")
	for _, ord := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f MAD\t%s\n", ord.ID, ord.CustomerName, ord.Date, ord.Total, ord.Status)
	}
	return tw.Flush()
}
