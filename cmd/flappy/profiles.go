package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"list"},
	Short:   "List all configured profiles",
	Long:    `Shows every profile loaded from the configuration, with its main tuning.`,
	Run:     runProfiles,
}

func runProfiles(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No profiles available.")
		return
	}

	fmt.Println("Available profiles:")
	fmt.Println()

	// Calculate column widths
	maxKeyLen := len("Profile")
	maxTitleLen := len("Title")
	for _, g := range games {
		maxKeyLen = max(maxKeyLen, len(g.Key))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-8s  %-6s  %s\n", maxKeyLen, "Profile", maxTitleLen, "Title", "Scale", "Speed", "Gravity")
	fmt.Printf("  %-*s  %-*s  %-8s  %-6s  %s\n", maxKeyLen, "-------", maxTitleLen, "-----", "-----", "-----", "-------")

	for _, g := range games {
		p, ok := appCfg.Profiles[g.Key]
		if !ok {
			fmt.Printf("  %-*s  %s\n", maxKeyLen, g.Key, g.Title)
			continue
		}
		marker := ""
		if g.Key == appCfg.DefaultProfile {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-*s  %-8s  %-6.2f  %.2f%s\n",
			maxKeyLen, g.Key, maxTitleLen, g.Title,
			p.Scale.Mode, p.Physics.ObstacleSpeed, p.Physics.Gravity, marker)
	}

	fmt.Println()
	fmt.Println("Run 'flappy play <profile>' to play.")
}
