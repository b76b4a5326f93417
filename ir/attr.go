package ir

// PresenceKind is how an optional attribute's presence is tracked in
// the generated struct (spec.md §4.3): a packed bitfield for plain
// optional fields, a length for variable payloads, or a count for
// repeated ones.
type PresenceKind string

const (
	PresenceNone    PresenceKind = ""
	PresencePresent PresenceKind = "present"
	PresenceLen     PresenceKind = "len"
	PresenceCount   PresenceKind = "count"
)

// Checks holds the subset of spec.md §3's check vocabulary that
// applies to this attribute: min, max, range, full-range, sparse,
// flags-mask, exact-len, min-len, max-len, unterminated-ok.
type Checks struct {
	HasMin   bool
	Min      int64
	HasMax   bool
	Max      int64
	FullRange bool
	Sparse    bool
	FlagsMask string // enum name

	ExactLen      int
	HasExactLen   bool
	MinLen        int
	HasMinLen     bool
	MaxLen        int
	HasMaxLen     bool
	UnterminatedOK bool
}

// Equal reports whether c and o describe the same validation, used by
// the resolver to enforce "a subset's checks must equal the parent's
// checks" (spec.md §3 invariant).
func (c Checks) Equal(o Checks) bool {
	return c == o
}

// AttrBase holds the fields every Attr variant shares. Concrete
// variants embed it and add their own extra fields; the Attr interface
// lets emit-side code pattern-match on the concrete type rather than
// subclass virtual dispatch - Go has no inheritance, and the taxonomy
// here is a tagged union, not a hierarchy.
type AttrBase struct {
	Set   *AttrSet
	Name  string
	CName string
	Index int

	// EnumName is the C enum constant name this attribute's wire type
	// is assigned in the owning set's generated enum (e.g.
	// "ETHTOOL_A_STRSET_HEADER").
	EnumName string

	Doc    string
	Checks Checks

	// NestedSet is set when this attribute refers to another attribute
	// set, either directly (Nest, ArrayNest of nest, NestTypeValue) or
	// has been synthesized for a sub-message (SubMessage).
	NestedSet *AttrSet
	SubMsg    *SubMessage
	Selector  *Selector

	Presence PresenceKind

	Request bool
	Reply   bool

	IsSelector bool // true if some sibling sub-message attribute selects on this one

	MultiAttr bool // wrapped in a MultiAttr presence-count collection
}

func (b *AttrBase) Base() *AttrBase { return b }

// Attr is the shared interface of all twelve attribute-type variants.
// Behavior specific to a variant (arg_member, struct_member,
// attr_policy, attr_put, attr_get, free, setter - spec.md §4.3) lives
// in the emit package, dispatched with a type switch over the concrete
// types below; ir itself only carries the resolved data.
type Attr interface {
	Base() *AttrBase
	Kind() string
}

// Selector describes how a sub-message variant is chosen at runtime:
// either a sibling attribute in the same set (internal), or an
// argument threaded in from outside (external) - spec.md §3, §4.2
// pass 8.
type Selector struct {
	Name     string
	External bool
	Sibling  Attr
}
