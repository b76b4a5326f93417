// Package shape builds the per-operation, per-mode view the emitter
// walks: which request/reply struct applies, whether do and dump share
// one reply type, and whether a fixed header or classic nlmsg-flags
// field prepends the payload (spec.md §4.4).
package shape

import (
	"errors"
	"fmt"

	"github.com/m-lab/nlgen/ir"
)

// RenderInfo is the resolved shape of one op in one mode ("do", "dump"
// or "event").
type RenderInfo struct {
	Op   *ir.Operation
	Mode string

	Request *ir.Struct
	Reply   *ir.Struct

	FixedHeader    string
	HasNlmsgFlags  bool
}

// Build derives the RenderInfo for op in the given mode, or (nil, nil)
// if the operation has no block for that mode.
func Build(f *ir.Family, op *ir.Operation, mode string) (*RenderInfo, error) {
	spec := specFor(op, mode)
	if spec == nil {
		return nil, nil
	}
	if op.AttrSet == nil {
		return nil, fmt.Errorf("shape: operation %s: %w", op.Name, ErrNoAttrSet)
	}

	ri := &RenderInfo{Op: op, Mode: mode}
	if len(spec.RequestAttrs) > 0 {
		ri.Request = ir.NewStruct(op.AttrSet, spec.RequestAttrs)
		ri.Request.Request = true
	}
	if len(spec.ReplyAttrs) > 0 {
		ri.Reply = ir.NewStruct(op.AttrSet, spec.ReplyAttrs)
		ri.Reply.Reply = true
	}

	fh := spec.FixedHeader
	if fh == "" {
		fh = op.FixedHeader
	}
	if fh == "" {
		fh = f.FixedHeader
	}
	if fh != "" && fh != f.FixedHeader && f.Flavor != "classic" {
		return nil, fmt.Errorf("shape: %s.%s: %w", op.Name, mode, ir.ErrFixedHeaderOverrideUnsupported)
	}
	ri.FixedHeader = fh

	ri.HasNlmsgFlags = f.Flavor == "classic" && mode == "do" && ri.Request != nil

	return ri, nil
}

func specFor(op *ir.Operation, mode string) *ir.OpSpec {
	switch mode {
	case "do":
		return op.Do
	case "dump":
		return op.Dump
	case "event":
		return op.Event
	default:
		return nil
	}
}

// TypeConsistent reports whether op's do and dump replies describe the
// same type: same attribute set and identical attribute name list
// (spec.md §4.4 "whether response types for do and dump coincide").
func TypeConsistent(op *ir.Operation) bool {
	if op.Do == nil || op.Dump == nil {
		return false
	}
	if len(op.Do.ReplyAttrs) != len(op.Dump.ReplyAttrs) {
		return false
	}
	for i, n := range op.Do.ReplyAttrs {
		if op.Dump.ReplyAttrs[i] != n {
			return false
		}
	}
	return true
}

// ErrNoAttrSet is returned by Build when an operation has a do/dump/event
// block but no attribute-set to resolve member names against.
var ErrNoAttrSet = errors.New("shape: operation has no attribute-set")
