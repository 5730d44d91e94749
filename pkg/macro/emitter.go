package macro

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/philipparndt/forgemesh/pkg/forge"
)

// Defaults for the editor the macro drives
const (
	DefaultWindowTitle = "Halo Infinite"
	DefaultStartDelay  = 1000
	DefaultMenuWait    = 2000
)

// Options configures the generated script
type Options struct {
	WindowTitle string
	// StartDelay is the pause in ms after focusing the window
	StartDelay int
	// MenuWait is the pause in ms after opening the menu
	MenuWait  int
	KeyDelays KeyDelays
	Tree      *Action
}

// DefaultOptions returns options for the default editor layout
func DefaultOptions() Options {
	return Options{
		WindowTitle: DefaultWindowTitle,
		StartDelay:  DefaultStartDelay,
		MenuWait:    DefaultMenuWait,
		KeyDelays:   DefaultKeyDelays(),
		Tree:        DefaultActionTree(),
	}
}

// Emitter writes AutoHotkey macros
type Emitter struct {
	opts Options
	log  *zap.Logger
}

// NewEmitter creates an emitter. Missing key delays or tree fall back to the
// defaults; a nil logger disables logging.
func NewEmitter(opts Options, log *zap.Logger) *Emitter {
	if opts.KeyDelays == nil {
		opts.KeyDelays = DefaultKeyDelays()
	}
	if opts.Tree == nil {
		opts.Tree = DefaultActionTree()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{opts: opts, log: log}
}

// Emit writes the macro that builds primitives to w
func (e *Emitter) Emit(w io.Writer, primitives []forge.Primitive) error {
	instructions, err := Instructions(primitives, e.opts.MenuWait)
	if err != nil {
		return err
	}
	return e.EmitInstructions(w, instructions)
}

// EmitInstructions writes the macro for an instruction list to w
func (e *Emitter) EmitInstructions(w io.Writer, instructions []Instruction) error {
	script, err := e.Script(instructions)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, script.String()); err != nil {
		return fmt.Errorf("failed to write macro: %w", err)
	}
	return nil
}

// Script renders the instructions. The navigator starts at the root of the
// action tree; for each instruction it backs out of the nodes not on the
// target path, enters the missing ones and then presses the target's
// execute keys.
func (e *Emitter) Script(instructions []Instruction) (*Script, error) {
	s := NewScript()
	s.WinActivate(e.opts.WindowTitle)
	s.Sleep(e.opts.StartDelay)

	nav := &navigator{root: e.opts.Tree, script: s, delays: e.opts.KeyDelays}
	for i, in := range instructions {
		if in.Wait > 0 {
			s.Sleep(in.Wait)
			continue
		}
		if err := nav.run(in); err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", i, in, err)
		}
	}

	e.log.Debug("generated macro",
		zap.Int("instructions", len(instructions)),
		zap.Int("key_presses", nav.presses))
	return s, nil
}

type navigator struct {
	root    *Action
	script  *Script
	delays  KeyDelays
	path    Path
	nodes   []*Action
	presses int
}

func (n *navigator) run(in Instruction) error {
	target, err := n.root.Lookup(in.Path)
	if err != nil {
		return err
	}

	shared := commonPrefix(n.path, in.Path)
	for len(n.nodes) > shared {
		last := n.nodes[len(n.nodes)-1]
		if err := n.press(last.Exit, nil); err != nil {
			return err
		}
		n.nodes = n.nodes[:len(n.nodes)-1]
		n.path = n.path[:len(n.path)-1]
	}

	for i := shared; i < len(in.Path); i++ {
		if err := n.press(target[i].Enter, nil); err != nil {
			return err
		}
		n.nodes = append(n.nodes, target[i])
		n.path = append(n.path, in.Path[i])
	}

	current := n.root
	if len(n.nodes) > 0 {
		current = n.nodes[len(n.nodes)-1]
	}
	return n.press(current.Execute, in.Args)
}

func (n *navigator) press(keys []string, args []string) error {
	n.presses += len(keys)
	return n.script.KeySequence(keys, n.delays, args)
}

func commonPrefix(a, b Path) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}
