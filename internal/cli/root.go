// Package cli regroupe les commandes d'administration de storectl :
// consulter le catalogue et les commandes, changer un statut, générer un hash admin.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"costumes_back_end/internal/config"
	"costumes_back_end/internal/database"
	"costumes_back_end/internal/store"
)

// RootOptions contient les options globales
type RootOptions struct {
	Driver     string
	SQLitePath string
	Format     string // "text" | "json"

	settings config.StorageSettings
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand crée la commande racine storectl
func NewRootCommand() *cobra.Command {
	settings := config.FromEnv().Storage
	opts := &RootOptions{settings: settings}

	cmd := &cobra.Command{
		Use:           "storectl",
		Short:         "Administration de la boutique de costumes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("format %q invalide : %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", settings.Driver, "backend de stockage (memory|sqlite|redis|scylla|minio)")
	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite-path", settings.SQLitePath, "fichier SQLite")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "format de sortie (text|json)")

	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewRecommendedCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))
	cmd.AddCommand(NewOrderStatusCommand(opts))
	cmd.AddCommand(NewHashPasswordCommand())

	return cmd
}

// openStore ouvre le stockage choisi et charge la boutique ; close doit être appelé
func (o *RootOptions) openStore(ctx context.Context) (*store.Store, func(), error) {
	cfg := o.settings
	cfg.Driver = o.Driver
	cfg.SQLitePath = o.SQLitePath

	storage, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	s := store.New(ctx, storage, store.WithTimeout(cfg.Timeout))
	return s, func() { storage.Close() }, nil
}

func (o *RootOptions) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
