package emit

import (
	"fmt"

	"github.com/m-lab/nlgen/ir"
)

// setterParams returns the caller-facing parameters of a's setter
// (everything after the leading "struct ..._req *req"), or ok == false
// if a has no setter at all - nest-type-value attributes are
// reply-only (spec.md §4.3, grounded on the original generator's
// TypeNestTypeValue, which likewise defines no setter).
func setterParams(a ir.Attr) (params []string, ok bool) {
	if v, isMulti := a.(*ir.MultiAttrAttr); isMulti {
		return multiAttrSetterParams(v)
	}
	switch v := a.(type) {
	case *ir.ScalarAttr:
		return []string{fmt.Sprintf("%s %s", cScalarType(v), v.CName)}, true
	case *ir.FlagAttr:
		return nil, true
	case *ir.StringAttr:
		return []string{fmt.Sprintf("const char *%s", v.CName)}, true
	case *ir.BinaryAttr:
		return []string{fmt.Sprintf("const void *%s", v.CName), "size_t len"}, true
	case *ir.BinaryStructAttr:
		return []string{fmt.Sprintf("const void *%s", v.CName), "size_t len"}, true
	case *ir.BinaryScalarArrayAttr:
		return []string{fmt.Sprintf("const %s *%s", cScalarTypeName(v.ScalarType), v.CName), "size_t count"}, true
	case *ir.Bitfield32Attr:
		return []string{fmt.Sprintf("const struct nla_bitfield32 *%s", v.CName)}, true
	case *ir.NestAttr:
		if v.NestedSet == nil {
			return nil, false
		}
		if isSelfNest(v.AttrBase, v.NestedSet) {
			return []string{fmt.Sprintf("struct %s *%s", cIdentLocal(v.NestedSet.Name), v.CName)}, true
		}
		return []string{fmt.Sprintf("const struct %s *%s", cIdentLocal(v.NestedSet.Name), v.CName)}, true
	case *ir.SubMessageAttr:
		if v.NestedSet == nil {
			return nil, false
		}
		return []string{fmt.Sprintf("const struct %s *%s", cIdentLocal(v.NestedSet.Name), v.CName)}, true
	case *ir.NestTypeValueAttr:
		return nil, false
	case *ir.ArrayNestAttr:
		return arrayNestSetterParams(v), true
	default:
		return nil, false
	}
}

func arrayNestSetterParams(v *ir.ArrayNestAttr) []string {
	switch v.ElemKind {
	case ir.ArrayElemNest:
		return []string{fmt.Sprintf("struct %s *%s", cIdentLocal(v.NestedSet.Name), v.CName), "size_t count"}
	case ir.ArrayElemScalar:
		return []string{fmt.Sprintf("%s *%s", cScalarTypeName(v.ElemScalarType), v.CName), "size_t count"}
	default:
		return []string{fmt.Sprintf("unsigned char (*%s)[%d]", v.CName, v.Checks.ExactLen), "size_t count"}
	}
}

func multiAttrSetterParams(v *ir.MultiAttrAttr) ([]string, bool) {
	switch e := v.Elem.(type) {
	case *ir.ScalarAttr:
		return []string{fmt.Sprintf("%s *%s", cScalarType(e), v.CName), "size_t count"}, true
	case *ir.StringAttr:
		return []string{fmt.Sprintf("char **%s", v.CName), "size_t count"}, true
	case *ir.BinaryStructAttr:
		return []string{fmt.Sprintf("struct %s *%s", cIdentLocal(e.StructName), v.CName), "size_t count"}, true
	case *ir.NestAttr:
		if e.NestedSet == nil {
			return nil, false
		}
		return []string{fmt.Sprintf("struct %s *%s", cIdentLocal(e.NestedSet.Name), v.CName), "size_t count"}, true
	default:
		return nil, false
	}
}

// writeSetterProto declares one request setter, or nothing for an
// attribute with no setter (setterParams ok == false).
func writeSetterProto(cw *CodeWriter, f *ir.Family, opCName string, m ir.Attr) {
	params, ok := setterParams(m)
	if !ok {
		return
	}
	args := append([]string{fmt.Sprintf("struct %s_%s_req *req", cIdentLocal(f.Name), opCName)}, params...)
	name := fmt.Sprintf("%s_%s_set_%s", cIdentLocal(f.Name), opCName, m.Base().CName)
	cw.WriteFuncProto("void", name, args, ";")
}

// setterBody writes a setter's presence/len/count bookkeeping plus the
// assignment or owned-copy it makes (spec.md §4.3, grounded on the
// original generator's _setter_lines). owner is "req".
func setterBody(cw *CodeWriter, owner string, a ir.Attr) {
	if v, isMulti := a.(*ir.MultiAttrAttr); isMulti {
		multiAttrSetterBody(cw, owner, v)
		return
	}
	switch v := a.(type) {
	case *ir.ScalarAttr:
		cw.P("%s->_present.%s = 1;", owner, v.CName)
		cw.P("%s->%s = %s;", owner, v.CName, v.CName)
	case *ir.FlagAttr:
		cw.P("%s->_present.%s = 1;", owner, v.CName)
	case *ir.StringAttr:
		cw.P("%s->_len.%s = strlen(%s);", owner, v.CName, v.CName)
		cw.P("%s->%s = malloc(%s->_len.%s + 1);", owner, v.CName, owner, v.CName)
		cw.P("memcpy(%s->%s, %s, %s->_len.%s);", owner, v.CName, v.CName, owner, v.CName)
		cw.P("%s->%s[%s->_len.%s] = 0;", owner, v.CName, owner, v.CName)
	case *ir.BinaryAttr:
		cw.P("%s->_len.%s = len;", owner, v.CName)
		cw.P("%s->%s = malloc(%s->_len.%s);", owner, v.CName, owner, v.CName)
		cw.P("memcpy(%s->%s, %s, %s->_len.%s);", owner, v.CName, v.CName, owner, v.CName)
	case *ir.BinaryStructAttr:
		cw.P("%s->_len.%s = len;", owner, v.CName)
		cw.P("%s->%s = malloc(%s->_len.%s);", owner, v.CName, owner, v.CName)
		cw.P("memcpy(%s->%s, %s, %s->_len.%s);", owner, v.CName, v.CName, owner, v.CName)
	case *ir.BinaryScalarArrayAttr:
		cw.P("%s->_count.%s = count;", owner, v.CName)
		cw.P("count *= sizeof(%s);", cScalarTypeName(v.ScalarType))
		cw.P("%s->%s = malloc(count);", owner, v.CName)
		cw.P("memcpy(%s->%s, %s, count);", owner, v.CName, v.CName)
	case *ir.Bitfield32Attr:
		cw.P("%s->_present.%s = 1;", owner, v.CName)
		cw.P("memcpy(&%s->%s, %s, sizeof(struct nla_bitfield32));", owner, v.CName, v.CName)
	case *ir.NestAttr:
		if v.NestedSet == nil {
			return
		}
		if isSelfNest(v.AttrBase, v.NestedSet) {
			cw.P("%s->%s = %s;", owner, v.CName, v.CName)
			return
		}
		cw.P("%s->_present.%s = 1;", owner, v.CName)
		cw.P("%s->%s = *%s;", owner, v.CName, v.CName)
	case *ir.SubMessageAttr:
		if v.NestedSet == nil {
			return
		}
		cw.P("%s->_present.%s = 1;", owner, v.CName)
		cw.P("%s->%s = *%s;", owner, v.CName, v.CName)
	case *ir.ArrayNestAttr:
		cw.P("%s->%s = %s;", owner, v.CName, v.CName)
		cw.P("%s->_count.%s = count;", owner, v.CName)
	}
}

func multiAttrSetterBody(cw *CodeWriter, owner string, v *ir.MultiAttrAttr) {
	switch v.Elem.(type) {
	case *ir.ScalarAttr, *ir.StringAttr, *ir.BinaryStructAttr, *ir.NestAttr:
		cw.P("%s->%s = %s;", owner, v.CName, v.CName)
		cw.P("%s->_count.%s = count;", owner, v.CName)
	}
}
