// Package repl implements the interactive Read-Eval-Print Loop for prog.
//
// Grounded on akashmaji946-go-mix's repl.Repl: readline for line editing
// and history, fatih/color for feedback, a persistent evaluation
// environment reused across lines, and panic recovery around each line
// so one bad input never kills the session. Generalized here to toggle
// between prog's evaluator and VM backends via a ":vm" command, and to
// log session-lifecycle events through logrus rather than print directly
// to the transcript the user is reading.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/kristofer/prog/internal/compiler"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/eval"
	"github.com/kristofer/prog/internal/intrinsics"
	"github.com/kristofer/prog/internal/parser"
	"github.com/kristofer/prog/internal/vm"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is one interactive session: its banner/prompt chrome, the
// persistent environment definitions accumulate in, and the backend
// currently selected for evaluating each line.
type Repl struct {
	Banner  string
	Version string
	Prompt  string

	Log     *logrus.Logger
	backend string // "eval" or "vm"
	ctx     *env.Context
}

// New creates a session with every capability enabled and the evaluator
// backend selected, matching prog's top-level program defaults.
func New(banner, version, prompt string) *Repl {
	ctx := env.New(env.AllCapabilities())
	intrinsics.Register(ctx)
	return &Repl{
		Banner:  banner,
		Version: version,
		Prompt:  prompt,
		Log:     logrus.StandardLogger(),
		backend: "eval",
		ctx:     ctx,
	}
}

func (r *Repl) printBanner(writer io.Writer) {
	line := strings.Repeat("-", 60)
	blueColor.Fprintf(writer, "%s\n", line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", line)
	yellowColor.Fprintf(writer, "prog %s\n", r.Version)
	cyanColor.Fprintln(writer, "Type an expression or statement and press enter.")
	cyanColor.Fprintln(writer, "Commands: :vm (switch to the bytecode VM), :eval (switch back), :exit")
	blueColor.Fprintf(writer, "%s\n", line)
}

// Start runs the loop until the user exits or input is exhausted (EOF).
func (r *Repl) Start(writer io.Writer) error {
	r.printBanner(writer)

	rl, err := readline.New(r.promptString())
	if err != nil {
		return err
	}
	defer rl.Close()
	r.ctx.Stdout = writer

	r.Log.WithField("backend", r.backend).Info("repl session started")

	for {
		rl.SetPrompt(r.promptString())
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("\n"))
			r.Log.Info("repl session ended")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r.handleCommand(line, writer) {
			continue
		}
		if line == ":exit" || line == ".exit" {
			r.Log.Info("repl session ended")
			return nil
		}
		rl.SaveHistory(line)
		r.evalLine(line, writer)
	}
}

// handleCommand recognises a leading-colon directive and returns true if
// one was handled (including an unrecognised one, which just warns).
func (r *Repl) handleCommand(line string, writer io.Writer) bool {
	if !strings.HasPrefix(line, ":") || line == ":exit" {
		return false
	}
	switch line {
	case ":vm":
		r.backend = "vm"
		r.Log.Info("switched to vm backend")
		cyanColor.Fprintln(writer, "switched to the bytecode VM backend")
	case ":eval":
		r.backend = "eval"
		r.Log.Info("switched to evaluator backend")
		cyanColor.Fprintln(writer, "switched to the tree-walking evaluator backend")
	default:
		redColor.Fprintf(writer, "unknown command: %s\n", line)
	}
	return true
}

func (r *Repl) promptString() string {
	if r.backend == "vm" {
		return r.Prompt + "(vm)> "
	}
	return r.Prompt + "> "
}

// evalLine parses and runs one line against the session's persistent
// environment, recovering from any panic so the loop survives it.
func (r *Repl) evalLine(line string, writer io.Writer) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "runtime panic: %v\n", rec)
		}
	}()

	p, err := parser.New(line, "<repl>")
	if err != nil {
		r.printErr(writer, err)
		return
	}
	prog, err := p.Parse()
	if err != nil {
		r.printErr(writer, err)
		return
	}

	if r.backend == "vm" {
		code, err := compiler.New().Compile(prog)
		if err != nil {
			r.printErr(writer, err)
			return
		}
		result, err := vm.New().Run(code, r.ctx)
		if err != nil {
			r.printErr(writer, err)
			return
		}
		yellowColor.Fprintf(writer, "%s\n", result.Display())
		return
	}

	result, err := eval.Eval(prog, r.ctx)
	if err != nil {
		r.printErr(writer, err)
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.Display())
}

func (r *Repl) printErr(writer io.Writer, err error) {
	if d, ok := diag.AsDiagnostic(err); ok {
		redColor.Fprint(writer, diag.Render(d))
		return
	}
	redColor.Fprintf(writer, "error: %v\n", err)
}
