package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

// callMain runs RealMain with exit stubbed, returning the exit code (-1 when
// RealMain returns without exiting) and stdout.
func callMain() (int, string) {
	exitCode := -1
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
		panic("exit")
	}

	output := captureOutput(func() {
		defer func() {
			if r := recover(); r != nil && r != "exit" {
				panic(r)
			}
		}()
		RealMain()
	})
	return exitCode, output
}

func TestRealMain(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"portfolio"},
			expectedExit:   1,
			expectedOutput: "Usage: portfolio <command>",
		},
		{
			name:           "help command",
			args:           []string{"portfolio", "help"},
			expectedExit:   -1,
			expectedOutput: "Usage: portfolio <command> [options]",
		},
		{
			name:           "version command",
			args:           []string{"portfolio", "version"},
			expectedExit:   -1,
			expectedOutput: "portfolio version " + CliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"portfolio", "unknown"},
			expectedExit:   1,
			expectedOutput: "Unknown command: unknown",
		},
		{
			name:           "age with date",
			args:           []string{"portfolio", "age", "--date", "2025-03-15"},
			expectedExit:   0,
			expectedOutput: "14",
		},
		{
			name:           "age with bad date",
			args:           []string{"portfolio", "age", "--date", "tomorrow"},
			expectedExit:   1,
			expectedOutput: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			exitCode, output := callMain()

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestPrintHelp(t *testing.T) {
	output := captureOutput(printHelp)

	assert.Contains(t, output, "Usage: portfolio")
	for _, cmd := range []string{"help", "version", "serve", "render [--api URL]", "age [--date YYYY-MM-DD]", "db <init|clean|backup|restore"} {
		assert.Contains(t, output, cmd)
	}
}
