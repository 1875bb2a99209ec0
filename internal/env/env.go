// Package env implements the runtime environment (Context): a stack of
// lexical frames holding variable bindings, plus the capability flags
// that gate host-sensitive intrinsics, per spec §3/§4.6.
//
// Grounded on go-mix's scope/scope.go parent-chain Scope, generalized
// here into an explicit frame stack so `deeper`/`shallower` transitions
// read like the smog evaluator's locals/globals split, but with
// capability-flag inheritance layered on top for import/extern/input/
// stdout gating.
package env

import (
	"io"
	"os"

	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// frame is one lexical scope level: a flat map of bindings.
type frame struct {
	vars map[string]value.Value
}

func newFrame() *frame { return &frame{vars: make(map[string]value.Value)} }

// Capabilities gates which host-sensitive intrinsics a Context may call,
// per spec §4.6: con_stdout_allowed, imports_allowed, inputs_allowed,
// externs_allowed.
type Capabilities struct {
	Stdout  bool
	Imports bool
	Inputs  bool
	Externs bool
}

// AllCapabilities returns a Capabilities with every flag enabled, the
// default for a top-level program run.
func AllCapabilities() Capabilities {
	return Capabilities{Stdout: true, Imports: true, Inputs: true, Externs: true}
}

// Context is the environment a program executes in: a stack of frames
// plus inherited capability flags and I/O streams.
type Context struct {
	frames []*frame
	caps   Capabilities
	Stdout io.Writer
	Stdin  io.Reader
	// Externs holds host-injected values reachable via `extern name`,
	// per spec §4.6.
	Externs map[string]value.Value
}

// New creates a top-level Context with one frame and the given
// capabilities, writing to os.Stdout/reading from os.Stdin by default.
func New(caps Capabilities) *Context {
	return &Context{
		frames:  []*frame{newFrame()},
		caps:    caps,
		Stdout:  os.Stdout,
		Stdin:   os.Stdin,
		Externs: make(map[string]value.Value),
	}
}

// Capabilities returns the Context's capability flags.
func (c *Context) Capabilities() Capabilities { return c.caps }

// Deeper pushes a new frame for entering a nested lexical scope (do-block,
// function call, while/if body), inheriting this Context's capabilities
// and I/O streams.
func (c *Context) Deeper() *Context {
	frames := make([]*frame, len(c.frames)+1)
	copy(frames, c.frames)
	frames[len(frames)-1] = newFrame()
	return &Context{frames: frames, caps: c.caps, Stdout: c.Stdout, Stdin: c.Stdin, Externs: c.Externs}
}

// Shallower returns a Context one frame shallower, used when a nested
// scope exits. On a Context with only one frame it returns c unchanged.
func (c *Context) Shallower() *Context {
	if len(c.frames) <= 1 {
		return c
	}
	return &Context{frames: c.frames[:len(c.frames)-1], caps: c.caps, Stdout: c.Stdout, Stdin: c.Stdin, Externs: c.Externs}
}

// WithCapabilities returns a Context with replaced capability flags,
// inheriting frames and I/O.
func (c *Context) WithCapabilities(caps Capabilities) *Context {
	return &Context{frames: c.frames, caps: caps, Stdout: c.Stdout, Stdin: c.Stdin, Externs: c.Externs}
}

// Insert defines a new variable in the current (innermost) frame.
func (c *Context) Insert(name string, v value.Value) {
	c.frames[len(c.frames)-1].vars[name] = v
}

// Get looks up a variable, searching from the innermost frame outward.
func (c *Context) Get(name string) (value.Value, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if v, ok := c.frames[i].vars[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Update assigns to an existing variable, searching from the innermost
// frame outward, and reports whether the variable was found.
func (c *Context) Update(name string, v value.Value) bool {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if _, ok := c.frames[i].vars[name]; ok {
			c.frames[i].vars[name] = v
			return true
		}
	}
	return false
}

// LookupError builds the standard "variable doesn't exist" diagnostic for
// a failed Get, per spec §7.
func LookupError(name string, sp span.Span) error {
	return diag.New(diag.KindVariableDoesntExist, sp, "variable does not exist: "+name)
}

// Exports collects every binding in the outermost frame into an Object,
// used by the `import` intrinsic to expose a module's top-level
// definitions to its importer.
func (c *Context) Exports() *value.Object {
	obj := value.NewObject()
	for name, v := range c.frames[0].vars {
		obj.Set(name, v)
	}
	return obj
}
