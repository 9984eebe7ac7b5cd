// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command yanglint is a thin smoke-test harness over package context:
// compile a module and print its schema tree, or validate an instance
// document against one. It replaces the teacher's flat getopt-based
// yang command with a cobra command tree, one subcommand per operation,
// keeping pborman/getopt only for compile's format-specific flags the
// way the teacher's own formatters carried their own getopt.Set.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var searchDirs []string

	root := &cobra.Command{
		Use:   "yanglint",
		Short: "compile and validate YANG-family schema and instance data",
	}
	root.PersistentFlags().StringSliceVarP(&searchDirs, "path", "p", nil,
		"directories to search for modules (comma separated, repeatable)")

	root.AddCommand(newCompileCmd(&searchDirs))
	root.AddCommand(newValidateCmd(&searchDirs))
	return root
}
