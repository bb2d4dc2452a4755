package main

import (
	"os"
	"testing"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Stdout != os.Stdout {
		t.Error("Stdout is not os.Stdout")
	}
	if env.Stderr != os.Stderr {
		t.Error("Stderr is not os.Stderr")
	}
	if env.Config != nil {
		t.Error("Config should be nil so it is loaded from disk")
	}
}
