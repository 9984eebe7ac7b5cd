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

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pborman/getopt"
	"github.com/spf13/cobra"

	"github.com/yangforge/yangcore/context"
	"github.com/yangforge/yangcore/schema"
)

// treeFlags is the format-specific option set for "compile", mirroring
// the teacher's per-formatter *getopt.Set (yang.go's formatter.flags):
// cobra owns the command tree and the shared --path flag, but format
// options after "--" are still parsed the teacher's way.
func treeFlags() (*getopt.Set, *bool) {
	set := getopt.New()
	var stateOnly bool
	set.BoolVarLong(&stateOnly, "config-false", 0, "only show state (config false) nodes")
	return set, &stateOnly
}

func newCompileCmd(searchDirs *[]string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile MODULE [-- FORMAT OPTIONS]",
		Short: "compile a module and print its schema tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, stateOnly := treeFlags()
			if extra := cmd.Flags().Args()[1:]; len(extra) > 0 {
				set.Parse(append([]string{"compile"}, extra...))
			}

			ctx := context.New(context.Options{SearchDirs: *searchDirs})
			m, err := ctx.LoadModule(args[0])
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), m.Root, 0, *stateOnly)
			return nil
		},
	}
	return cmd
}

// printTree writes sch and its descendants as an indented tree, in the
// same spirit as the teacher's tree.go Write but over schema.Node
// instead of yang.Entry.
func printTree(w io.Writer, sch *schema.Node, depth int, stateOnly bool) {
	if depth == 0 {
		fmt.Fprintf(w, "module: %s\n", sch.Name)
	}
	names := make([]string, 0, len(sch.Children))
	byName := map[string]*schema.Node{}
	for _, c := range sch.Children {
		if stateOnly && c.Config {
			continue
		}
		names = append(names, c.Name)
		byName[c.Name] = c
	}
	sort.Strings(names)
	for _, name := range names {
		c := byName[name]
		rw := "rw"
		if !c.Config {
			rw = "ro"
		}
		fmt.Fprintf(w, "%s+--%s %s  %s\n", strings.Repeat("|  ", depth), rw, c.Name, c.Kind)
		printTree(w, c, depth+1, stateOnly)
	}
}
