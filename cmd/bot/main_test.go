package main

import (
	"errors"
	"os"
	"os/exec"
	"testing"
)

// The child process runs main with both delivery surfaces disabled.
const runMainEnv = "PYTHON_TUTOR_RUN_MAIN"

func TestMainExitsNonZeroWhenRunFails(t *testing.T) {
	if os.Getenv(runMainEnv) == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMainExitsNonZeroWhenRunFails$")
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		runMainEnv+"=1",
		"GEMINI_API_KEY=test-key",
		"TELEGRAM_ENABLED=false",
		"HTTP_ENABLED=false",
		"DATABASE_URL=",
	)

	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("main exited with err = %v, want a non-zero exit status", err)
	}
	if exitErr.ExitCode() == 0 {
		t.Fatalf("exit code = 0, want non-zero")
	}
}
