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
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	yangcontext "github.com/yangforge/yangcore/context"

	"github.com/yangforge/yangcore/codec"
	"github.com/yangforge/yangcore/codec/jsoncodec"
	"github.com/yangforge/yangcore/codec/xmlcodec"
)

func newValidateCmd(searchDirs *[]string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate MODULE INSTANCE-FILE",
		Short: "validate an XML or JSON instance document against a module",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleName, instancePath := args[0], args[1]

			var c codec.Codec
			switch strings.ToLower(format) {
			case "xml":
				c = xmlcodec.New()
			case "json":
				c = jsoncodec.New()
			default:
				return fmt.Errorf("validate: unknown --format %q, want xml or json", format)
			}

			f, err := os.Open(instancePath)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			defer f.Close()

			ctx := yangcontext.New(yangcontext.Options{SearchDirs: *searchDirs})
			m, err := ctx.LoadModule(moduleName)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			root, err := c.Parse(context.Background(), m.Root, f)
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			tok := ctx.Attach()
			defer ctx.Detach(tok)
			if err := ctx.Validate(tok, root); err != nil {
				for _, it := range ctx.Errors(tok) {
					it.Fprint(cmd.OutOrStderr())
				}
				return fmt.Errorf("validate: %d error(s)", len(ctx.Errors(tok)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "xml", "instance document format: xml or json")
	return cmd
}
