package ir

// SubMessageFormat is one variant of a SubMessage: the shape used when
// the selector value matches Value.
type SubMessageFormat struct {
	Value       string
	FixedHeader string
	AttrSet     *AttrSet // nil if this variant only carries a fixed header
}

// SubMessage is a name plus a map from variant name to format
// descriptor. The IR builder also synthesizes an AttrSet named
// "submsg-<name>" mirroring the variants (spec.md §4.1), stored on
// Synthesized.
type SubMessage struct {
	Name        string
	Formats     []*SubMessageFormat
	Synthesized *AttrSet
}

func (sm *SubMessage) FormatByValue(v string) (*SubMessageFormat, bool) {
	for _, f := range sm.Formats {
		if f.Value == v {
			return f, true
		}
	}
	return nil, false
}
