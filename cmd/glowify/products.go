package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glowify/storefront/internal/api"
	"github.com/glowify/storefront/internal/config"
	"github.com/glowify/storefront/internal/render"
)

// productsCmd lists the catalog without entering the storefront.
func productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Run: func(cmd *cobra.Command, args []string) {
			env := config.Env()
			client := api.New(env.APIURL, env.Timeout)

			ctx, cancel := cmdContext()
			defer cancel()

			products, err := client.Products(ctx)
			if err != nil {
				exitOnError(err)
			}

			r := render.New(pretty, env.Locale)
			fmt.Print(r.Products(products))
		},
	}
}
