// Package main provides the Glowify storefront CLI entrypoint.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glowify/storefront/internal/api"
	"github.com/glowify/storefront/internal/chat"
	"github.com/glowify/storefront/internal/config"
	"github.com/glowify/storefront/internal/session"
	"github.com/glowify/storefront/internal/shop"
	"github.com/glowify/storefront/internal/tui"
)

var (
	version = "0.1.0"
	pretty  = true
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glowify",
		Short: "Glowify - skincare storefront",
		Long: `Glowify: terminal storefront for the Glowify skincare shop.

Usage modes:
  glowify             Start the interactive storefront
  glowify <command>   Run a one-shot command (see below)

The API endpoint comes from GLOWIFY_API_URL (default http://localhost:8000).`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !stdoutIsTTY() || config.Env().NoColor {
				pretty = false
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			runStorefront()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")

	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runStorefront launches the full-screen TUI.
func runStorefront() {
	env := config.Env()
	client := api.New(env.APIURL, env.Timeout)
	s := shop.New(client, session.New())
	assistant := chat.New(client)

	model := tui.New(s, assistant, env.Locale)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		exitOnError(err)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("glowify %s\n", version)
		},
	}
}
