package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barecheradouane2/ShoppingStorev1/config"
	"github.com/barecheradouane2/ShoppingStorev1/database/migrations"
	"github.com/barecheradouane2/ShoppingStorev1/database/seeders"
	"github.com/barecheradouane2/ShoppingStorev1/internal/server"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/database"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:   "shopstore",
		Short: "E-commerce back-office API",
	}

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), routeListCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context) error {
				return migrations.Run(ctx)
			})
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context) error {
				return seeders.Run(ctx)
			})
		},
	}
}

func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "Print the registered routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := server.NewRouter()

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATH\tNAME")
			for _, route := range r.Routes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", route.Method, route.Path, route.Name)
			}
			return tw.Flush()
		},
	}
}

func withDatabase(fn func(ctx context.Context) error) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	ctx := context.Background()
	defer database.Disconnect(ctx) //nolint:errcheck

	return fn(ctx)
}
