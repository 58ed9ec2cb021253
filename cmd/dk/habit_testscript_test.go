package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/daykeep/daykeep/internal/testsupport"
)

func TestHabitScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/habit",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
