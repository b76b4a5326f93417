package ir

// ScalarAttr covers u8/u16/u32/u64/s8/s16/s32/s64 and the
// byte-order-agnostic uint/sint wire types.
type ScalarAttr struct {
	AttrBase
	ScalarType string // "u8".."u64", "s8".."s64", "uint", "sint"
	ByteOrder  string // "", "big-endian" - "" resolves to native order
	Enum       *EnumSet
	EnumAsMask bool // checks.flags-mask, or enum kind == "flags"
	IsBitfield bool
}

func (a *ScalarAttr) Kind() string { return "scalar" }

// FlagAttr is presence-only: it carries no payload, only a present bit.
type FlagAttr struct{ AttrBase }

func (a *FlagAttr) Kind() string { return "flag" }

// PadAttr reserves wire space with no accessor.
type PadAttr struct {
	AttrBase
	Len int
}

func (a *PadAttr) Kind() string { return "pad" }

// UnusedAttr reserves an attribute index permanently.
type UnusedAttr struct{ AttrBase }

func (a *UnusedAttr) Kind() string { return "unused" }

// StringAttr is a variable-length, owned character buffer.
type StringAttr struct{ AttrBase }

func (a *StringAttr) Kind() string { return "string" }

// BinaryAttr is a variable-length, owned opaque buffer.
type BinaryAttr struct{ AttrBase }

func (a *BinaryAttr) Kind() string { return "binary" }

// BinaryStructAttr is a binary payload interpreted as a named C
// struct declared in the family's `definitions:` list.
type BinaryStructAttr struct {
	AttrBase
	StructName string
	Struct     *StructDef
}

func (a *BinaryStructAttr) Kind() string { return "binary-struct" }

// BinaryScalarArrayAttr is a binary payload interpreted as a packed
// array of one scalar sub-type, with PresenceCount tracking element
// count rather than byte length.
type BinaryScalarArrayAttr struct {
	AttrBase
	ScalarType string
}

func (a *BinaryScalarArrayAttr) Kind() string { return "binary-scalar-array" }

// Bitfield32Attr is a fixed 8-byte wire value (value + selector mask)
// validated against an enum-derived mask.
type Bitfield32Attr struct {
	AttrBase
	Enum *EnumSet
}

func (a *Bitfield32Attr) Kind() string { return "bitfield32" }

// NestAttr refers to another attribute set, forming a pure-nested
// struct (AttrBase.NestedSet).
type NestAttr struct{ AttrBase }

func (a *NestAttr) Kind() string { return "nest" }

// ArrayNestElemKind is the element shape of an ArrayNestAttr.
type ArrayNestElemKind string

const (
	ArrayElemNest   ArrayNestElemKind = "nest"
	ArrayElemBinary ArrayNestElemKind = "binary"
	ArrayElemScalar ArrayNestElemKind = "scalar"
)

// ArrayNestAttr is an `indexed-array`: a nested attribute set whose
// entries are numbered 0..n rather than addressed by a fixed wire
// type, used for repeated elements of a single shape.
type ArrayNestAttr struct {
	AttrBase
	ElemKind       ArrayNestElemKind
	ElemScalarType string // when ElemKind == ArrayElemScalar
}

func (a *ArrayNestAttr) Kind() string { return "array-nest" }

// NestTypeValueAttr is a nest whose attribute *type* field (not its
// payload) conveys a semantic value, with the named selector list
// threaded through as inherited arguments to the nested struct.
type NestTypeValueAttr struct {
	AttrBase
	TypeValue string
}

func (a *NestTypeValueAttr) Kind() string { return "nest-type-value" }

// SubMessageAttr is a variant-typed nest whose concrete shape is
// chosen at parse time by Selector.
type SubMessageAttr struct{ AttrBase }

func (a *SubMessageAttr) Kind() string { return "sub-message" }

// MultiAttrAttr wraps any other variant for an attribute that may
// appear repeatedly on the wire; Elem carries the wrapped variant and
// AttrBase.Presence is always PresenceCount.
type MultiAttrAttr struct {
	AttrBase
	Elem Attr
}

func (a *MultiAttrAttr) Kind() string { return "multi-attr" }
