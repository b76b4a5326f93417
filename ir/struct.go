package ir

// Struct is derived, never read from YAML: the emitter's view of one
// attribute set materialized as a C struct, built by resolveNestedSets
// and refined by the later resolver passes (spec.md §3, §4.2 passes
// 4-7). Root-level request/reply structs get an ad hoc Struct built on
// demand by NewStruct rather than stored in Family.NestedStructs, since
// a root struct's member list is the op's explicit request/reply
// attribute list, not "everything in the attribute set".
type Struct struct {
	Set         *AttrSet
	FixedHeader string
	Nested      bool

	Members []Attr // ordered, spec.md §3 "member list (ordered pairs)"

	ChildNests map[string]bool // transitive containment, keyed by AttrSet.Name
	Recursive  bool

	Request   bool
	Reply     bool
	InMultiVal bool
}

// NewStruct builds an ad hoc Struct over a subset of set's attributes,
// in the given order - used for an operation's root request/reply
// struct (whose members are an explicit attribute name list, not the
// whole set).
func NewStruct(set *AttrSet, memberNames []string) *Struct {
	s := &Struct{Set: set, ChildNests: map[string]bool{}}
	for _, name := range memberNames {
		if a, ok := set.ByName(name); ok {
			s.Members = append(s.Members, a)
		}
	}
	return s
}
