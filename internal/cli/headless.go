// internal/cli/headless.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var headlessPhase string

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the CI provisioning phases",
	Long: `Run the headless provisioning flow used by CI: install the package
manager, install the missing packages, then verify everything.

The phases are independently callable so a pipeline can gate each
stage:

  hosttools headless --phase=manager
  hosttools headless --phase=packages
  hosttools headless --phase=verify
  hosttools headless --phase=all

The exit code is 0 only when the selected phase fully succeeded.`,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().StringVar(&headlessPhase, "phase", "all", "phase to run (manager, packages, verify, all)")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	engine, err := newEngine(false)
	if err != nil {
		return err
	}

	run := func(name string, phase func(context.Context) (bool, error)) error {
		ok, err := phase(ctx)
		if err != nil {
			return fmt.Errorf("%s phase: %w", name, err)
		}
		if !ok {
			return fmt.Errorf("%s phase did not converge", name)
		}
		fmt.Printf("%s phase ok\n", name)
		return nil
	}

	switch headlessPhase {
	case "manager":
		return run("manager", engine.EnsureManagerHeadless)
	case "packages":
		return run("packages", engine.EnsurePackagesHeadless)
	case "verify":
		return run("verify", engine.CheckAllHeadless)
	case "all":
		if err := run("manager", engine.EnsureManagerHeadless); err != nil {
			return err
		}
		if err := run("packages", engine.EnsurePackagesHeadless); err != nil {
			return err
		}
		return run("verify", engine.CheckAllHeadless)
	default:
		return fmt.Errorf("unknown phase %q (want manager, packages, verify or all)", headlessPhase)
	}
}
