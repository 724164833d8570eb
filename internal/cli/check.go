// internal/cli/check.go
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the required build tools",
	Long: `Probe every required native tool and report its status without
installing anything.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	engine, err := newEngine(false)
	if err != nil {
		return err
	}

	mgr, err := engine.ResolveManager(ctx)
	if err != nil {
		return fmt.Errorf("resolving package manager: %w", err)
	}
	if mgr == nil {
		color.Yellow("This platform has no supported package manager")
		return nil
	}

	managerOK, err := engine.CheckManagerAvailable(ctx)
	if err != nil {
		return err
	}
	printStatusLine(string(mgr.Name)+" (package manager)", managerOK, "")

	statuses, err := engine.CheckAll(ctx)
	if err != nil {
		return fmt.Errorf("probing packages: %w", err)
	}

	missing := 0
	for _, s := range statuses {
		printStatusLine(s.Name, s.Available, s.Err)
		if !s.Available {
			missing++
		}
	}

	fmt.Println()
	if missing == 0 {
		color.Green("All %d required tools are available", len(statuses))
	} else {
		color.Yellow("%d of %d required tools are missing; run 'hosttools install'", missing, len(statuses))
	}
	return nil
}

func printStatusLine(name string, available bool, errText string) {
	switch {
	case available:
		fmt.Printf("  %s %s\n", color.GreenString("✓"), name)
	case errText != "":
		fmt.Printf("  %s %s (%s)\n", color.RedString("✗"), name, errText)
	default:
		fmt.Printf("  %s %s\n", color.RedString("✗"), name)
	}
}
