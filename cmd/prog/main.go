// Command prog is the command-line front end for the language: it runs
// source files, disassembles compiled bytecode, and launches the
// interactive REPL.
//
// Grounded on kristofer-smog's cmd/smog (run/compile/disassemble/repl
// subcommand set) and playbymail-ottomap's cobra-based cmd/* layout
// (root command with persistent --log-level, subcommands wiring their
// own flags), generalized onto prog's engine package and logged with
// logrus rather than slog to match the rest of the ambient stack.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kristofer/prog/internal/bytecode"
	"github.com/kristofer/prog/internal/compiler"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/engine"
	"github.com/kristofer/prog/internal/parser"
	"github.com/kristofer/prog/internal/repl"
)

var log = logrus.StandardLogger()

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:           "prog",
		Short:         "prog runs and inspects programs written in the language",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			log.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "process log level (trace|debug|info|warn|error)")

	root.AddCommand(newRunCmd(), newDisasmCmd(), newReplCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var useVM bool
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "run a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			source := strings.ReplaceAll(string(data), "\r\n", "\n")

			backend := engine.BackendEvaluator
			if useVM {
				backend = engine.BackendVM
			}
			log.WithFields(logrus.Fields{"file": path, "vm": useVM}).Debug("executing program")

			opts := engine.DefaultOptions()
			opts.Backend = backend
			_, err = engine.Execute(source, path, opts)
			if err != nil {
				if d, ok := diag.AsDiagnostic(err); ok {
					fmt.Fprint(os.Stderr, diag.Render(d))
					os.Exit(1)
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useVM, "vm", false, "run on the bytecode VM instead of the tree-walking evaluator")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file>",
		Short: "compile a source file and print its bytecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			source := strings.ReplaceAll(string(data), "\r\n", "\n")

			code, err := parseAndCompile(source, path)
			if err != nil {
				if d, ok := diag.AsDiagnostic(err); ok {
					fmt.Fprint(os.Stderr, diag.Render(d))
					os.Exit(1)
				}
				return err
			}
			printDisasm(os.Stdout, code, "")
			return nil
		},
	}
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := repl.New(
				"prog - an interactive language shell",
				version,
				"prog",
			)
			session.Log = log
			return session.Start(os.Stdout)
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "serve",
		Short:  "run a network-facing evaluation server",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stderr, "serve: not implemented in this core")
			os.Exit(1)
			return nil
		},
	}
}

const version = "0.1.0"

func parseAndCompile(source, file string) (*bytecode.Bytecode, error) {
	p, err := parser.New(source, file)
	if err != nil {
		return nil, err
	}
	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return compiler.New().Compile(prog)
}

func printDisasm(w *os.File, code *bytecode.Bytecode, indent string) {
	fmt.Fprintf(w, "%sConstants:\n", indent)
	if len(code.Constants) == 0 {
		fmt.Fprintf(w, "%s  (none)\n", indent)
	}
	for i, c := range code.Constants {
		if proto, ok := c.(*bytecode.FuncProto); ok {
			fmt.Fprintf(w, "%s  [%d] func %s(%s)\n", indent, i, proto.Name, strings.Join(proto.Params, ", "))
			printDisasm(w, proto.Code, indent+"    ")
			continue
		}
		fmt.Fprintf(w, "%s  [%d] %#v\n", indent, i, c)
	}

	fmt.Fprintf(w, "%sInstructions:\n", indent)
	for i, instr := range code.Instructions {
		fmt.Fprintf(w, "%s  %4d: %-8s %d\n", indent, i, instr.Op, instr.Operand)
	}
}
