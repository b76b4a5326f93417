package ir

import (
	"fmt"

	"github.com/m-lab/nlgen/yamlspec"
)

var scalarTypes = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true,
	"s8": true, "s16": true, "s32": true, "s64": true,
	"uint": true, "sint": true,
}

// buildAttr dispatches one raw YAML attribute entry into its typed
// Attr variant, per spec.md §4.1: "Instantiate one typed Attr per YAML
// entry, dispatching on type (and sub-type for indexed-array and
// binary)."
func buildAttr(f *Family, set *AttrSet, ra yamlspec.Attr, index int) (Attr, error) {
	base := AttrBase{
		Set: set, Name: ra.Name, CName: cIdent(ra.Name), Index: index, Doc: ra.Doc,
	}
	base.EnumName = cUpper(set.NamePrefix + ra.Name)
	checks, err := buildChecks(ra.Checks)
	if err != nil {
		return nil, wrapf(err, "%s.%s checks", set.Name, ra.Name)
	}
	base.Checks = checks

	var attr Attr
	switch {
	case ra.Type == "pad":
		l := checks.ExactLen
		attr = &PadAttr{AttrBase: base, Len: l}

	case ra.Type == "unused":
		attr = &UnusedAttr{AttrBase: base}

	case scalarTypes[ra.Type]:
		base.Presence = PresencePresent
		s := &ScalarAttr{AttrBase: base, ScalarType: ra.Type}
		s.ByteOrder = ra.ByteOrder
		if s.ByteOrder == "" {
			s.ByteOrder = defaultByteOrder()
		}
		if ra.Enum != "" {
			es, ok := f.EnumByName(ra.Enum)
			if !ok {
				return nil, wrapf(ErrUnknownEnum, "%s.%s enum %s", set.Name, ra.Name, ra.Enum)
			}
			s.Enum = es
			s.EnumAsMask = ra.EnumAsFlags || es.Kind == "flags" || checks.FlagsMask != ""
			if err := deriveScalarChecksFromEnum(&s.AttrBase.Checks, es, s.EnumAsMask); err != nil {
				return nil, wrapf(err, "%s.%s", set.Name, ra.Name)
			}
		}
		if s.Checks.HasMin && s.Checks.HasMax && s.Checks.Min > s.Checks.Max {
			return nil, wrapf(ErrMinGreaterThanMax, "%s.%s", set.Name, ra.Name)
		}
		if s.Checks.HasMin && s.Checks.HasMax && (s.Checks.Min < -32768 || s.Checks.Max > 32767) {
			s.Checks.FullRange = true
		}
		attr = s

	case ra.Type == "flag":
		base.Presence = PresencePresent
		attr = &FlagAttr{AttrBase: base}

	case ra.Type == "string":
		base.Presence = PresenceLen
		attr = &StringAttr{AttrBase: base}

	case ra.Type == "binary":
		base.Presence = PresenceLen
		switch {
		case ra.Struct != "":
			attr = &BinaryStructAttr{AttrBase: base, StructName: ra.Struct}
		case scalarTypes[ra.SubType]:
			base.Presence = PresenceCount
			attr = &BinaryScalarArrayAttr{AttrBase: base, ScalarType: ra.SubType}
		default:
			attr = &BinaryAttr{AttrBase: base}
		}

	case ra.Type == "bitfield32":
		base.Presence = PresencePresent
		bf := &Bitfield32Attr{AttrBase: base}
		if ra.Enum == "" {
			return nil, wrapf(ErrUnknownEnum, "%s.%s bitfield32 requires enum", set.Name, ra.Name)
		}
		es, ok := f.EnumByName(ra.Enum)
		if !ok {
			return nil, wrapf(ErrUnknownEnum, "%s.%s enum %s", set.Name, ra.Name, ra.Enum)
		}
		bf.Enum = es
		attr = bf

	case ra.Type == "nest" && ra.SubMessage != "":
		base.Presence = PresencePresent
		sma := &SubMessageAttr{AttrBase: base}
		sm, ok := f.SubMessages[ra.SubMessage]
		if !ok {
			return nil, wrapf(ErrUnresolvedSubMessage, "%s.%s sub-message %s", set.Name, ra.Name, ra.SubMessage)
		}
		sma.AttrBase.SubMsg = sm
		sma.AttrBase.NestedSet = sm.Synthesized
		sma.AttrBase.Selector = &Selector{Name: ra.Selector, External: ra.SelectorExternal}
		attr = sma

	case ra.Type == "nest":
		base.Presence = PresencePresent
		nested, ok := f.AttrSets[ra.NestedAttributes]
		if !ok {
			return nil, wrapf(ErrUnresolvedAttrSet, "%s.%s nested-attributes %s", set.Name, ra.Name, ra.NestedAttributes)
		}
		base.NestedSet = nested
		attr = &NestAttr{AttrBase: base}

	case ra.Type == "nest-type-value":
		base.Presence = PresencePresent
		nested, ok := f.AttrSets[ra.NestedAttributes]
		if !ok {
			return nil, wrapf(ErrUnresolvedAttrSet, "%s.%s nested-attributes %s", set.Name, ra.Name, ra.NestedAttributes)
		}
		base.NestedSet = nested
		attr = &NestTypeValueAttr{AttrBase: base, TypeValue: ra.TypeValue}

	case ra.Type == "indexed-array":
		base.Presence = PresenceCount
		an := &ArrayNestAttr{AttrBase: base}
		switch {
		case ra.NestedAttributes != "":
			nested, ok := f.AttrSets[ra.NestedAttributes]
			if !ok {
				return nil, wrapf(ErrUnresolvedAttrSet, "%s.%s nested-attributes %s", set.Name, ra.Name, ra.NestedAttributes)
			}
			an.AttrBase.NestedSet = nested
			an.ElemKind = ArrayElemNest
		case scalarTypes[ra.SubType]:
			an.ElemKind = ArrayElemScalar
			an.ElemScalarType = ra.SubType
		default:
			an.ElemKind = ArrayElemBinary
		}
		attr = an

	default:
		return nil, wrapf(ErrUnknownAttrType, "%s.%s type %q", set.Name, ra.Name, ra.Type)
	}

	if ra.MultiAttr {
		mb := AttrBase{Set: set, Name: ra.Name, CName: attr.Base().CName, EnumName: attr.Base().EnumName, Index: index, Doc: ra.Doc, Checks: checks, MultiAttr: true}
		mb.Presence = PresenceCount
		mb.NestedSet = attr.Base().NestedSet
		mb.SubMsg = attr.Base().SubMsg
		mb.Selector = attr.Base().Selector
		attr = &MultiAttrAttr{AttrBase: mb, Elem: attr}
	}
	return attr, nil
}

func buildChecks(raw map[string]interface{}) (Checks, error) {
	var c Checks
	if raw == nil {
		return c, nil
	}
	if v, ok := raw["min"]; ok {
		n, ok := toInt64(v)
		if !ok {
			return c, fmt.Errorf("ir: checks.min must be numeric")
		}
		c.HasMin, c.Min = true, n
	}
	if v, ok := raw["max"]; ok {
		n, ok := toInt64(v)
		if !ok {
			return c, fmt.Errorf("ir: checks.max must be numeric")
		}
		c.HasMax, c.Max = true, n
	}
	if v, ok := raw["range"]; ok {
		if lst, ok := v.([]interface{}); ok && len(lst) == 2 {
			lo, _ := toInt64(lst[0])
			hi, _ := toInt64(lst[1])
			c.HasMin, c.Min = true, lo
			c.HasMax, c.Max = true, hi
		}
	}
	if v, ok := raw["full-range"]; ok {
		if b, ok := v.(bool); ok {
			c.FullRange = b
		}
	}
	if v, ok := raw["sparse"]; ok {
		if b, ok := v.(bool); ok {
			c.Sparse = b
		}
	}
	if v, ok := raw["flags-mask"]; ok {
		switch m := v.(type) {
		case string:
			c.FlagsMask = m
		case bool:
			if m {
				c.FlagsMask = "self"
			}
		}
	}
	if v, ok := raw["exact-len"]; ok {
		if n, ok := toInt64(v); ok {
			c.HasExactLen, c.ExactLen = true, int(n)
		}
	}
	if v, ok := raw["min-len"]; ok {
		if n, ok := toInt64(v); ok {
			c.HasMinLen, c.MinLen = true, int(n)
		}
	}
	if v, ok := raw["max-len"]; ok {
		if n, ok := toInt64(v); ok {
			c.HasMaxLen, c.MaxLen = true, int(n)
		}
	}
	if v, ok := raw["unterminated-ok"]; ok {
		if b, ok := v.(bool); ok {
			c.UnterminatedOK = b
		}
	}
	if c.HasMin && c.HasMax && c.Min > c.Max {
		return c, ErrMinGreaterThanMax
	}
	return c, nil
}

// deriveScalarChecksFromEnum implements spec.md §4.1: "if enum is set
// and the enum is contiguous, materialize min/max; if non-contiguous,
// set sparse."
func deriveScalarChecksFromEnum(c *Checks, es *EnumSet, asMask bool) error {
	if asMask {
		if c.FlagsMask == "" {
			c.FlagsMask = es.Name
		}
		return nil
	}
	low, high, ok := es.Range()
	if !ok {
		c.Sparse = true
		return nil
	}
	if !c.HasMin {
		c.HasMin, c.Min = true, int64(low)
	}
	if !c.HasMax {
		c.HasMax, c.Max = true, int64(high)
	}
	return nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
