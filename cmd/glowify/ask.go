package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glowify/storefront/internal/api"
	"github.com/glowify/storefront/internal/chat"
	"github.com/glowify/storefront/internal/config"
	"github.com/glowify/storefront/internal/render"
)

// askCmd sends a one-shot question to the shop assistant.
func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the shop assistant a question",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env := config.Env()
			client := api.New(env.APIURL, env.Timeout)
			assistant := chat.New(client)

			ctx, cancel := cmdContext()
			defer cancel()

			reply := assistant.Ask(ctx, strings.Join(args, " "))

			r := render.New(pretty, env.Locale)
			fmt.Println(r.Answer(reply.Text, 76))
		},
	}
}
