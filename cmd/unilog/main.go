// Copyright 2025 The Unilog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command unilog is the proof-verifier CLI: one positional argument
// list of entry files, each executed as
// execute(Refer{tag=atom("root"), file_path=atom(path)}, nil) against
// a shared fact store.
package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/unilog-lang/unilog/internal/config"
	"github.com/unilog-lang/unilog/internal/executor"
	"github.com/unilog-lang/unilog/internal/parser"
	"github.com/unilog-lang/unilog/internal/prover"
	"github.com/unilog-lang/unilog/internal/store"
	"github.com/unilog-lang/unilog/internal/term"
)

var (
	configPath     string
	verbose        bool
	debugDumpTerms bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unilog [files...]",
		Short: "Unilog proof verifier",
		Long: "Unilog checks a sequence of axiom, guide, infer, and refer statements " +
			"against a shared fact database, registering proved theorems as it goes.",
		RunE: runRoot,
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to an optional unilog.yaml")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each file as it is executed")
	cmd.Flags().BoolVar(&debugDumpTerms, "debug-dump-terms", false, "dump the fact store's terms structurally after execution")
	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if len(args) == 0 {
			args = cfg.Files
		}
		verbose = verbose || cfg.Verbose
		debugDumpTerms = debugDumpTerms || cfg.DebugDumpTerms
	}

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}

	s := store.New()
	p := prover.New(s)

	// Sequenced with SetLimit(1): unilog's executor mutates the
	// process-global working directory and an un-synchronized fact
	// store, so entry files must run one at a time. A failing file is
	// reported and recorded in failed; it does not cancel the files
	// after it, which still run.
	g := new(errgroup.Group)
	g.SetLimit(1)

	failed := false
	for _, file := range files {
		file := file
		g.Go(func() error {
			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			ex := executor.New(s, p)
			a := term.NewArena()
			stmt := &parser.Statement{
				Kind:     parser.ReferStatement,
				Arena:    a,
				Tag:      a.Atom("root"),
				FilePath: a.Atom(file),
			}
			if err := ex.Execute(stmt, ex.RootModulePath()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: failed to execute file: %v\n", file, err)
				failed = true
			}
			return nil
		})
	}
	_ = g.Wait()

	if debugDumpTerms {
		dumpStore(cmd, s)
	}
	if failed {
		return fmt.Errorf("one or more input files failed to execute")
	}
	return nil
}

// expandGlobs resolves each positional argument as a doublestar glob,
// passing through verbatim any argument that matches no files, so a
// plain, non-matching file path (or an empty glob) still produces its
// own FileOpenFailed instead of silently vanishing.
func expandGlobs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func dumpStore(cmd *cobra.Command, s *store.Store) {
	out := cmd.OutOrStdout()
	s.Scan(func(modulePath, tag term.Handle, entry *store.Entry) bool {
		fmt.Fprintln(out, s.Arena().Dump(modulePath))
		fmt.Fprintln(out, s.Arena().Dump(tag))
		if entry.Kind == store.TheoremEntry {
			fmt.Fprintln(out, s.Arena().Dump(entry.Theorem))
		} else {
			fmt.Fprintln(out, s.Arena().Dump(entry.Guide))
		}
		return true
	})
}
