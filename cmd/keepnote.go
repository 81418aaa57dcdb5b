/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/Paintersrp/keepnote/internal/config"
	"github.com/Paintersrp/keepnote/internal/state"
	"github.com/Paintersrp/keepnote/pkg/cmd/root"
)

func Execute() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	// Get Home Directory for locating config files
	home, err := state.GetHomeDir()
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("Error: %v", err))
		return 1
	}

	// Optional; variables already set in the environment win.
	_ = godotenv.Load(config.GetEnvPath(home))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := root.NewCmdRoot(state.NewState(home))
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return report(err, stderr)
	}
	return 0
}

// report prints err and returns the exit code. A failing child process
// passes its own status through.
func report(err error, stderr io.Writer) int {
	fmt.Fprintln(stderr, color.RedString("Error: %v", err))

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
