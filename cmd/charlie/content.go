package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/compulsive-charlie/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Show activities, thoughts and the schedule",
	Long: `Print the content pool a run is built from, after the config overrides
(unlocks, ratings and the schedule) are applied.

Examples:
  charlie content
  charlie content --config ./my-charlie.yaml`,
	Args: cobra.NoArgs,
	RunE: runContent,
}

func runContent(cmd *cobra.Command, args []string) error {
	settings, err := loadConfig()
	if err != nil {
		return err
	}
	profile, err := content.NewProfile(settings.Profile)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Start: energy %d/%d, bed time %d\n",
		profile.InitialEnergy, profile.EnergyCap, profile.BedTime)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Activities:")
	fmt.Fprintf(out, "  %-14s  %-6s  %-9s  %-8s  %s\n", "Name", "Rating", "Kind", "Unlocked", "Notes")
	fmt.Fprintf(out, "  %-14s  %-6s  %-9s  %-8s  %s\n", "----", "------", "----", "--------", "-----")
	for _, a := range profile.Activities {
		kind := "normal"
		if a.Breakdown {
			kind = "breakdown"
		}
		fmt.Fprintf(out, "  %-14s  %-6d  %-9s  %-8s  %d\n", a.Name, a.Rating, kind, yesNo(a.Unlocked), len(a.Song.Notes))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Thoughts:")
	fmt.Fprintf(out, "  %-18s  %-4s  %-8s  %s\n", "Name", "Cost", "Unlocked", "Description")
	fmt.Fprintf(out, "  %-18s  %-4s  %-8s  %s\n", "----", "----", "--------", "-----------")
	for _, t := range profile.Thoughts {
		fmt.Fprintf(out, "  %-18s  %-4d  %-8s  %s\n", t.Name, t.EnergyCost, yesNo(t.Unlocked), t.Description)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Schedule:")
	if len(profile.Schedule) == 0 {
		fmt.Fprintln(out, "  (empty)")
		return nil
	}
	steps := make([]int, 0, len(profile.Schedule))
	for step := range profile.Schedule {
		steps = append(steps, step)
	}
	sort.Ints(steps)
	for _, step := range steps {
		fmt.Fprintf(out, "  step %-3d  %s\n", step, profile.Schedule[step])
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
