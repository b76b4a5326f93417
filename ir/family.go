package ir

// Const is the shared marker for entries of Family.Consts: an
// EnumSet, a StructDef, or a PlainConst, all declared under the
// family's top-level `definitions:` list and sharing one namespace
// (SPEC_FULL.md §4 "per-family consts namespace").
type Const interface {
	isConst()
}

// StructDef is a `type: struct` definitions entry: a C struct used as
// the payload type of a BinaryStructAttr, independent of any attribute
// set.
type StructDef struct {
	Name    string
	Doc     string
	Header  string // non-empty: declared elsewhere, emit only a forward decl
	Members []StructMember
}

func (s *StructDef) isConst() {}

// StructMember is one field of a StructDef.
type StructMember struct {
	Name string
	Type string
	Len  int
}

// PlainConst is a `type: const` definitions entry.
type PlainConst struct {
	Name  string
	Doc   string
	Value interface{}
}

func (c *PlainConst) isConst() {}

// KernelFamily carries the optional `kernel-family:` block: extra
// kernel-side headers to #include, and the socket-private struct name
// that enables CFI trampolines around its init/destroy hooks.
type KernelFamily struct {
	Headers  []string
	SockPriv string
}

// Family is the root of the IR: one family specification, fully built
// and (after Resolve) fully resolved. No global state persists across
// invocations - a Family is the entire lifetime of one generator run
// (spec.md §3 "Lifecycle").
type Family struct {
	Name    string
	Flavor  string // "generic" | "classic"
	Version int
	License string
	Doc     string

	FixedHeader string

	KernelPolicy   string // "global" | "per-op" | "split"
	MessageIDModel string // "unified" | "directional"

	Consts    map[string]Const
	constOrder []string

	AttrSets     map[string]*AttrSet
	attrSetOrder []string

	SubMessages     map[string]*SubMessage
	subMessageOrder []string

	Operations []*Operation

	MulticastGroups []string

	KernelFamily KernelFamily

	// Resolver-derived (spec.md §4.2 passes 4-7, 10):
	NestedStructs      map[string]*Struct // keyed by AttrSet.Name
	NestedStructsOrder []string           // topologically sorted

	GlobalPolicySet   *AttrSet
	GlobalPolicyOrder []string // attribute names, ordered union across ops
}

func newFamily() *Family {
	return &Family{
		Consts:        map[string]Const{},
		AttrSets:      map[string]*AttrSet{},
		SubMessages:   map[string]*SubMessage{},
		NestedStructs: map[string]*Struct{},
	}
}

func (f *Family) addConst(name string, c Const) {
	if _, dup := f.Consts[name]; !dup {
		f.constOrder = append(f.constOrder, name)
	}
	f.Consts[name] = c
}

func (f *Family) addAttrSet(set *AttrSet) {
	if _, dup := f.AttrSets[set.Name]; !dup {
		f.attrSetOrder = append(f.attrSetOrder, set.Name)
	}
	f.AttrSets[set.Name] = set
}

func (f *Family) addSubMessage(sm *SubMessage) {
	if _, dup := f.SubMessages[sm.Name]; !dup {
		f.subMessageOrder = append(f.subMessageOrder, sm.Name)
	}
	f.SubMessages[sm.Name] = sm
}

// ConstOrder returns definitions-entry names in declaration order.
func (f *Family) ConstOrder() []string { return f.constOrder }

// AttrSetOrder returns attribute-set names in declaration order
// (synthesized sub-message sets are appended after the YAML-declared
// ones, in sub-message declaration order).
func (f *Family) AttrSetOrder() []string { return f.attrSetOrder }

// SubMessageOrder returns sub-message names in declaration order.
func (f *Family) SubMessageOrder() []string { return f.subMessageOrder }

// EnumByName looks up a Const expected to be an *EnumSet, used when an
// attribute's `enum:` or `checks.flags-mask:` names another
// definitions entry.
func (f *Family) EnumByName(name string) (*EnumSet, bool) {
	c, ok := f.Consts[name]
	if !ok {
		return nil, false
	}
	es, ok := c.(*EnumSet)
	return es, ok
}

// OperationByName finds an operation by its YAML name, used to resolve
// `notify:` targets.
func (f *Family) OperationByName(name string) (*Operation, bool) {
	for _, op := range f.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}
