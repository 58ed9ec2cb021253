package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

// stringIfChanged returns a pointer to the flag's value when the user
// set it, so partial updates only touch the fields named on the command
// line.
func stringIfChanged(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	value, _ := flags.GetString(name)
	return &value
}

func intIfChanged(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	value, _ := flags.GetInt(name)
	return &value
}
