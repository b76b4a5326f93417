package ir

// AttrSet is a named, ordered collection of attributes - either a root
// set (an operation's request or reply attribute-set) or a pure-nested
// set reached only through another attribute's nested-attributes or
// sub-message reference. It starts life as neither; resolveRootSets
// and resolveNestedSets assign exactly one of those roles.
type AttrSet struct {
	Name       string
	SubsetOf   *AttrSet
	NamePrefix string
	EnumName   string // tag of the UAPI attribute enum ("enum <EnumName>")
	Doc        string

	Attrs   []Attr
	byName  map[string]Attr
	byIndex map[int]Attr

	MaxIndex int

	IsRoot    bool
	RootOf    []*Operation // operations whose request or reply use this set directly
	IsNested  bool
	NestUsers []Attr // no resolver pass fills this; it stays empty
}

func newAttrSet(name string) *AttrSet {
	return &AttrSet{
		Name:    name,
		byName:  map[string]Attr{},
		byIndex: map[int]Attr{},
	}
}

// Add registers attr at its resolved index, enforcing index uniqueness
// within the set (spec.md §3 invariant: "every attribute index within
// a set is unique").
func (s *AttrSet) Add(attr Attr) error {
	b := attr.Base()
	if _, dup := s.byIndex[b.Index]; dup {
		return wrapf(ErrDuplicateIndex, "%s.%s (index %d)", s.Name, b.Name, b.Index)
	}
	s.byIndex[b.Index] = attr
	s.byName[b.Name] = attr
	s.Attrs = append(s.Attrs, attr)
	if b.Index > s.MaxIndex {
		s.MaxIndex = b.Index
	}
	return nil
}

func (s *AttrSet) ByName(name string) (Attr, bool) {
	a, ok := s.byName[name]
	return a, ok
}

func (s *AttrSet) ByIndex(idx int) (Attr, bool) {
	a, ok := s.byIndex[idx]
	return a, ok
}

// RealAttr returns the attribute that owns attr's checks: itself,
// unless s is a subset, in which case it is the parent set's same-named
// attribute (spec.md §4.2 pass 7: "for subset attributes, onto the
// parent set's real attribute").
func (s *AttrSet) RealAttr(name string) Attr {
	set := s
	for set.SubsetOf != nil {
		set = set.SubsetOf
	}
	a, _ := set.ByName(name)
	return a
}
