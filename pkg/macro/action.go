// Package macro translates primitives into an AutoHotkey script that drives
// the forge editor's menus to rebuild them.
package macro

import (
	"fmt"
	"strings"
)

// Action is one node of the editor's menu tree. Enter keys open the node from
// its parent, Execute keys perform it and Exit keys return to the parent.
type Action struct {
	Enter    []string           `yaml:"enter,omitempty"`
	Execute  []string           `yaml:"execute,omitempty"`
	Exit     []string           `yaml:"exit,omitempty"`
	Children map[string]*Action `yaml:"children,omitempty"`
}

// Path names a node by the child names leading to it from the root. The
// empty path is the root.
type Path []string

// ParsePath splits a dotted node name such as "menu.objectProperties.move"
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return strings.Split(s, ".")
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Lookup returns the nodes along path, starting with the first child below
// the receiver
func (a *Action) Lookup(path Path) ([]*Action, error) {
	nodes := make([]*Action, 0, len(path))
	current := a
	for i, name := range path {
		next, ok := current.Children[name]
		if !ok || next == nil {
			return nil, fmt.Errorf("unknown action %q", path[:i+1].String())
		}
		nodes = append(nodes, next)
		current = next
	}
	return nodes, nil
}

// DefaultActionTree returns the menu layout of the forge editor
func DefaultActionTree() *Action {
	return &Action{
		Children: map[string]*Action{
			"menu": {
				Enter: []string{"BackSpace", "BackSpace", "r", "PgUp"},
				Exit:  []string{"BackSpace", "BackSpace"},
				Children: map[string]*Action{
					"spawnPrimitiveBlock": {
						Enter:   []string{"w", "w", "w", "Enter", "s", "Enter", "s"},
						Execute: []string{"Enter", "r"},
						Exit:    []string{"PgUp", "Escape", "w", "Enter", "PgUp"},
					},
					"spawnPolygon": {
						Enter:   []string{"PgDn", "w", "w", "w", "w", "Enter", "PgDn", "PgDn", "PgDn", "PgUp", "Enter"},
						Execute: []string{"Enter", "r"},
						Exit:    []string{"Escape", "PgUp", "s", "s", "s", "s", "Enter", "PgUp"},
					},
					"objectProperties": {
						Enter: []string{"e", "PgUp"},
						Exit:  []string{"q"},
						Children: map[string]*Action{
							"move": {
								Enter:   []string{"PgDn", "w", "w", "w", "w"},
								Execute: []string{"Enter", "{2}", "Enter", "w", "Enter", "{1}", "Enter", "w", "Enter", "{0}", "Enter", "s", "s"},
								Exit:    []string{"PgUp"},
							},
							"rotate": {
								Enter:   []string{"PgDn", "w", "w"},
								Execute: []string{"Enter", "{2}", "Enter", "s", "Enter", "{0}", "Enter", "s", "Enter", "{1}", "Enter", "w", "w"},
								Exit:    []string{"PgUp"},
							},
							"resize": {
								Enter:   []string{"s", "s", "s", "s"},
								Execute: []string{"Enter", "{0}", "Enter", "s", "Enter", "{1}", "Enter", "s", "Enter", "{2}", "Enter", "w", "w"},
								Exit:    []string{"PgUp"},
							},
							"resizeXY": {
								Enter:   []string{"s", "s", "s", "s"},
								Execute: []string{"Enter", "{0}", "Enter", "s", "Enter", "{1}", "Enter", "w"},
								Exit:    []string{"PgUp"},
							},
							"transform": {
								Execute: []string{
									// down to size X, then size X and Y (the editor derives Z)
									"s", "s", "s", "s",
									"Enter", "{6}", "Enter", "s", "Enter", "{7}", "Enter",
									// down to position X
									"s", "s", "s", "s", "s",
									"Enter", "{0}", "Enter", "s", "Enter", "{1}", "Enter", "s", "Enter", "{2}", "Enter",
									// down to the rotation fields, yaw first
									"s", "s",
									"Enter", "{5}", "Enter", "s", "Enter", "{4}", "Enter", "s", "Enter", "{3}", "Enter",
									"PgUp",
								},
							},
							"duplicate": {
								Enter:   []string{"Escape"},
								Execute: []string{"Ctrl+d"},
								Exit:    []string{"r", "PgUp"},
							},
						},
					},
				},
			},
			"focusObject": {
				Execute: []string{"f"},
			},
		},
	}
}
