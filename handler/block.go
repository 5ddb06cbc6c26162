package handler

import (
	"go.uber.org/zap"

	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/inspector"
	"github.com/wippyai/glinspect/resource"
)

// Block is a uniform block, shader storage block, atomic counter buffer or
// transform feedback buffer with its members resolved.
type Block struct {
	resource.Named
	// MemberIndices holds ACTIVE_VARIABLES, indices into the member
	// interface.
	MemberIndices []uint32
	// Members holds the member entries, resolved after collection.
	Members  []resource.Entry
	Stages   []catalog.Stage
	Binding  uint32
	DataSize uint32
}

// MemberInterface returns the interface that holds the members of a block
// interface.
func MemberInterface(iface catalog.Interface) (catalog.Interface, bool) {
	switch iface {
	case catalog.UniformBlock, catalog.AtomicCounterBuffer:
		return catalog.Uniform, true
	case catalog.ShaderStorageBlock:
		return catalog.BufferVariable, true
	case catalog.TransformFeedbackBuffer:
		return catalog.TransformFeedbackVarying, true
	}
	return 0, false
}

// Blocks decodes a block interface and links each block to its members.
type Blocks struct {
	iface   catalog.Interface
	members catalog.Interface
}

var _ inspector.Handler = (*Blocks)(nil)

// NewBlocks creates the handler for a block interface.
func NewBlocks(iface catalog.Interface) (*Blocks, error) {
	members, ok := MemberInterface(iface)
	if !ok {
		return nil, errors.UnsupportedCategory(errors.PhaseCollect, iface)
	}
	return &Blocks{iface: iface, members: members}, nil
}

// Interface returns the handled interface.
func (b *Blocks) Interface() catalog.Interface { return b.iface }

// Initialize implements inspector.Handler.
func (b *Blocks) Initialize(insp *inspector.Inspector, res resource.Named) (resource.Entry, error) {
	q, err := insp.Query(b.iface)
	if err != nil {
		return nil, err
	}
	indices, err := q.ActiveVariables(res.Index, res.Properties.Uint(catalog.NumActiveVariables))
	if err != nil {
		return nil, err
	}
	p := res.Properties
	return &Block{
		Named:         res,
		MemberIndices: indices,
		Stages:        stages(p),
		Binding:       p.Uint(catalog.BufferBinding),
		DataSize:      p.Uint(catalog.BufferDataSize),
	}, nil
}

// PostInit implements inspector.Handler. The member interface must have
// been collected.
func (b *Blocks) PostInit(insp *inspector.Inspector, entries []resource.Entry) error {
	members, err := insp.Container(b.members)
	if err != nil {
		return err
	}
	for _, e := range entries {
		blk, ok := e.(*Block)
		if !ok {
			continue
		}
		blk.Members = blk.Members[:0]
		for _, idx := range blk.MemberIndices {
			if int(idx) >= len(members) {
				Logger().Debug("block member out of range",
					zap.Stringer("interface", b.iface),
					zap.String("block", blk.Name),
					zap.Uint32("member", idx))
				continue
			}
			blk.Members = append(blk.Members, members[idx])
		}
	}
	return nil
}

// PrepareDraw implements inspector.Handler.
func (b *Blocks) PrepareDraw(*inspector.Inspector, []resource.Entry) error {
	return nil
}
