package ir

import (
	"fmt"

	"github.com/m-lab/nlgen/yamlspec"
)

// BuildFamily turns a decoded yamlspec.Doc into a Family: one typed
// object per YAML entry, dispatching on `type` (and `sub-type` for
// binary and indexed-array attributes). It populates only
// YAML-derived fields - everything cross-referenced or propagated is
// left zero-valued until Resolve runs (spec.md §4.1, design note
// "two-phase object").
func BuildFamily(doc *yamlspec.Doc) (*Family, error) {
	f := newFamily()
	f.Name = doc.Name
	f.Version = doc.Version
	f.License = doc.License
	f.Doc = doc.Doc
	f.FixedHeader = ""
	f.KernelPolicy = doc.KernelPolicy
	f.MessageIDModel = doc.Operations.EnumModel

	switch doc.Protocol {
	case "netlink-raw":
		f.Flavor = "classic"
	default:
		f.Flavor = "generic"
	}

	f.KernelFamily = KernelFamily{
		Headers:  append([]string{}, doc.KernelFamily.Headers...),
		SockPriv: doc.KernelFamily.SockPriv,
	}
	for _, g := range doc.MulticastGroups.List {
		f.MulticastGroups = append(f.MulticastGroups, g.Name)
	}

	if err := buildDefinitions(f, doc.Definitions); err != nil {
		return nil, err
	}
	if err := createAttrSets(f, doc.AttrSets); err != nil {
		return nil, err
	}
	if err := buildSubMessages(f, doc.SubMessages); err != nil {
		return nil, err
	}
	if err := populateAttrSets(f, doc.AttrSets); err != nil {
		return nil, err
	}
	if err := buildOperations(f, doc.Operations); err != nil {
		return nil, err
	}
	return f, nil
}

func buildDefinitions(f *Family, defs []yamlspec.Definition) error {
	for _, d := range defs {
		switch d.Type {
		case "enum", "flags":
			entries := make([]rawEnumEntry, 0, len(d.Entries))
			for _, re := range d.Entries {
				v, has := toInt(re.Value)
				entries = append(entries, rawEnumEntry{name: re.Name, hasValue: has, value: v, doc: re.Doc})
			}
			es, err := buildEnumSet(d.Name, d.Type, d.ValuePfx, d.EnumCntName, d.Header, d.RenderMax, d.Doc, entries)
			if err != nil {
				return err
			}
			f.addConst(d.Name, es)
		case "struct":
			sd := &StructDef{Name: d.Name, Doc: d.Doc, Header: d.Header}
			for _, m := range d.Members {
				sd.Members = append(sd.Members, StructMember{Name: m.Name, Type: m.Type, Len: m.Len})
			}
			f.addConst(d.Name, sd)
		case "const":
			f.addConst(d.Name, &PlainConst{Name: d.Name, Doc: d.Doc, Value: d.Value})
		case "pad":
			// Standalone pad definitions describe layout only; nothing to
			// register in the consts namespace.
		default:
			return fmt.Errorf("ir: definition %q: %w (%q)", d.Name, ErrUnknownAttrType, d.Type)
		}
	}
	return nil
}

// createAttrSets creates every named set with no attributes populated,
// so subset-of references and sub-message `attribute-set:` variants
// resolve regardless of declaration order.
func createAttrSets(f *Family, raw []yamlspec.AttrSet) error {
	for _, ras := range raw {
		set := newAttrSet(ras.Name)
		set.NamePrefix = ras.NamePrefix
		set.EnumName = ras.EnumName
		f.addAttrSet(set)
	}
	return nil
}

// populateAttrSets fills in each set's attribute list. It runs after
// createAttrSets and after buildSubMessages, since a `nest` attribute
// may itself reference a sub-message by name.
func populateAttrSets(f *Family, raw []yamlspec.AttrSet) error {
	for _, ras := range raw {
		set := f.AttrSets[ras.Name]
		if ras.SubsetOf != "" {
			parent, ok := f.AttrSets[ras.SubsetOf]
			if !ok {
				return wrapf(ErrUnresolvedAttrSet, "attribute-set %s subset-of %s", ras.Name, ras.SubsetOf)
			}
			set.SubsetOf = parent
			if set.NamePrefix == "" {
				set.NamePrefix = parent.NamePrefix
			}
		}
		nextIndex := 1
		for _, ra := range ras.Attributes {
			idx := nextIndex
			if ra.Value != nil {
				idx = *ra.Value
			}
			attr, err := buildAttr(f, set, ra, idx)
			if err != nil {
				return err
			}
			if err := set.Add(attr); err != nil {
				return err
			}
			if set.SubsetOf != nil {
				real := set.SubsetOf
				if ra2, ok := real.ByName(ra.Name); ok {
					if !ra2.Base().Checks.Equal(attr.Base().Checks) {
						return wrapf(ErrSubsetChecksDiffer, "%s.%s", set.Name, ra.Name)
					}
				}
			}
			nextIndex = idx + 1
		}
	}
	return nil
}

func buildSubMessages(f *Family, raw []yamlspec.SubMessage) error {
	for _, rsm := range raw {
		sm := &SubMessage{Name: rsm.Name}
		synth := newAttrSet("submsg-" + rsm.Name)
		idx := 1
		for _, rf := range rsm.Formats {
			format := &SubMessageFormat{Value: rf.Value, FixedHeader: rf.FixedHeader}
			var attr Attr
			base := AttrBase{Set: synth, Name: rf.Value, CName: cIdent(rf.Value), Index: idx, EnumName: cUpper(rf.Value)}
			switch {
			case rf.AttributeSet != "":
				set, ok := f.AttrSets[rf.AttributeSet]
				if !ok {
					return wrapf(ErrUnresolvedAttrSet, "sub-message %s variant %s", rsm.Name, rf.Value)
				}
				format.AttrSet = set
				base.NestedSet = set
				attr = &NestAttr{AttrBase: base}
			case rf.FixedHeader != "":
				attr = &BinaryStructAttr{AttrBase: base, StructName: rf.FixedHeader}
			default:
				attr = &FlagAttr{AttrBase: base}
			}
			if err := synth.Add(attr); err != nil {
				return err
			}
			sm.Formats = append(sm.Formats, format)
			idx++
		}
		sm.Synthesized = synth
		f.addAttrSet(synth)
		f.addSubMessage(sm)
	}
	return nil
}

func buildOperations(f *Family, raw yamlspec.Operations) error {
	nextVal := 1
	for _, ro := range raw.List {
		op := &Operation{
			Name:        ro.Name,
			CName:       cIdent(ro.Name),
			Doc:         ro.Doc,
			FixedHeader: ro.FixedHeader,
			NotifyOf:    ro.Notify,
			NamePrefix:  raw.NamePrefix,
			AsyncPrefix: raw.AsyncPrefix,
		}
		if op.FixedHeader == "" {
			op.FixedHeader = raw.FixedHeader
		}
		if ro.AttributeSet != "" {
			set, ok := f.AttrSets[ro.AttributeSet]
			if !ok {
				return wrapf(ErrUnresolvedAttrSet, "operation %s attribute-set %s", ro.Name, ro.AttributeSet)
			}
			op.AttrSet = set
		}
		if ro.Value != nil {
			op.Value = *ro.Value
			op.HasExplicitValue = true
			nextVal = op.Value + 1
		} else {
			op.Value = nextVal
			nextVal++
		}
		var err error
		if op.Do, err = buildOpSpec(ro.Do); err != nil {
			return err
		}
		if op.Dump, err = buildOpSpec(ro.Dump); err != nil {
			return err
		}
		if ro.Event != nil {
			op.Event = &OpSpec{ReplyAttrs: ro.Event.Attributes, Pre: ro.Event.Pre, Post: ro.Event.Post}
		}
		op.DualPolicy = op.Do != nil && len(op.Do.RequestAttrs) > 0 &&
			op.Dump != nil && len(op.Dump.RequestAttrs) > 0
		op.IsAsync = op.Event != nil || op.NotifyOf != ""
		f.Operations = append(f.Operations, op)
	}
	return nil
}

func buildOpSpec(rm *yamlspec.OpMode) (*OpSpec, error) {
	if rm == nil {
		return nil, nil
	}
	spec := &OpSpec{Pre: rm.Pre, Post: rm.Post}
	if rm.Request != nil {
		spec.RequestAttrs = rm.Request.Attributes
		spec.FixedHeader = rm.Request.FixedHeader
		if rm.Request.Value != nil {
			spec.RequestValue, spec.HasRequestValue = *rm.Request.Value, true
		}
	}
	if rm.Reply != nil {
		spec.ReplyAttrs = rm.Reply.Attributes
		if spec.FixedHeader == "" {
			spec.FixedHeader = rm.Reply.FixedHeader
		}
		if rm.Reply.Value != nil {
			spec.ReplyValue, spec.HasReplyValue = *rm.Reply.Value, true
		}
	}
	return spec, nil
}

// toInt converts a YAML-decoded `interface{}` scalar into an int,
// tolerating the int/int64/uint64 shapes gopkg.in/yaml.v3 may produce
// depending on the literal's form in the source file; any other type,
// a string included, yields ok == false.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}
