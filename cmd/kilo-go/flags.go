// ABOUTME: Persistent CLI flags shared by every kilo-go command
// ABOUTME: --config, --log and --verbose; --probe is registered on the size command

package main

import "github.com/spf13/cobra"

type cliArgs struct {
	configPath string
	logPath    string
	verbose    bool
	probe      bool
}

func (a *cliArgs) register(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Settings file merged over the global config")
	flags.StringVar(&a.logPath, "log", "", "Write logs to this file (default: discard)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log at debug level")
}
