// internal/cli/install.go
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var installManagerOnly bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the missing build tools",
	Long: `Install the platform's package manager if needed, then install every
missing required tool through it, one at a time.

Examples:
  hosttools install
  hosttools install --manager-only
  hosttools install --manifest=./custom-manifest.json`,
	RunE: runInstallCmd,
}

func init() {
	installCmd.Flags().BoolVar(&installManagerOnly, "manager-only", false, "install only the package manager")
}

func runInstallCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	engine, err := newEngine(true)
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
	if !managerOK {
		fmt.Printf("Installing %s...\n", mgr.Name)
		installed, err := engine.InstallManager(ctx)
		if err != nil {
			return err
		}
		if !installed {
			if mgr.Spec.InstallCommand == "" {
				color.Yellow("%s must be installed manually: %s", mgr.Name, mgr.Spec.InstallURL)
			} else {
				color.Red("Installing %s failed", mgr.Name)
			}
			return nil
		}
		color.Green("✓ %s installed", mgr.Name)
	}

	if installManagerOnly {
		return nil
	}

	result, err := engine.InstallAllMissing(ctx)
	if err != nil {
		return fmt.Errorf("installing packages: %w", err)
	}

	if result.InstalledCount() == 0 && !result.HasErrors() {
		color.Green("All required tools were already available")
		return nil
	}

	for _, name := range result.Succeeded {
		fmt.Printf("  %s installed %s\n", color.GreenString("✓"), name)
	}
	for _, name := range result.PendingRestart {
		fmt.Printf("  %s installed %s (restart required)\n", color.YellowString("●"), name)
	}
	for _, name := range result.Failed {
		fmt.Printf("  %s failed %s\n", color.RedString("✗"), name)
	}

	fmt.Println()
	if result.HasErrors() {
		color.Red("Some installs failed; re-run 'hosttools install' to retry")
	}
	if result.NeedsRestart() {
		color.Yellow("Restart your terminal (or machine) so the new tools appear on PATH")
	}
	return nil
}
