// internal/cli/root.go
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	hosttools "github.com/openembed/hosttools"
	"github.com/openembed/hosttools/pkg/core"
	"github.com/openembed/hosttools/pkg/shell"
)

var (
	cfgFile      string
	manifestPath string
	debug        bool
	config       *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hosttools",
	Short: "Host build-tool provisioning",
	Long: `hosttools - Host build-tool provisioning

Probes the machine for the native tools a build pipeline needs (cmake,
ninja, gperf, python, dtc, ...), installs the missing ones through the
platform's package manager, and verifies the result. Headless phases
give CI pipelines per-stage pass/fail visibility.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hosttools/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "manifest file overriding the embedded one")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if manifestPath != "" {
		config.ManifestPath = manifestPath
	}
	if debug {
		config.Debug = true
	}
}

// newEngine builds the engine from the effective configuration.
// Interactive commands stream install output; headless runs do not.
func newEngine(interactive bool) (*hosttools.Engine, error) {
	engineCfg := &hosttools.Config{
		ManifestPath: config.ManifestPath,
		Debug:        config.Debug,
	}
	if interactive && !config.Headless && !hosttools.IsCI() {
		var logger *log.Logger
		if config.Debug {
			logger = log.New(os.Stderr, "hosttools: ", log.LstdFlags)
		} else {
			logger = log.New(os.Stderr, "", 0)
		}
		engineCfg.Tasks = shell.NewStreamTaskRunner(logger)
	}
	return hosttools.New(engineCfg)
}
