package emit

import (
	"fmt"

	"github.com/m-lab/nlgen/ir"
	"github.com/m-lab/nlgen/shape"
)

// EmitUserHeader renders the user-side header: op-name-to-string and
// enum-to-string forward declarations, nested-struct type
// definitions, and per-op request/response types, setters, frees and
// prototypes (spec.md §4.5 "User header").
func EmitUserHeader(f *ir.Family, license, specRelPath string, args []string, extraIncludes []string) ([]byte, error) {
	cw := NewCodeWriter()
	WriteBanner(cw, license, specRelPath, "user-header", args)

	guard := cUpperLocal(f.Name) + "_USER_H"
	cw.P("#ifndef %s", guard)
	cw.P("#define %s", guard)
	cw.Nl()
	cw.P("#include <stdlib.h>")
	cw.P("#include <string.h>")
	cw.P("#include <ynl.h>")
	cw.P("#include \"%s.h\"", cIdentLocal(f.Name))
	for _, inc := range extraIncludes {
		cw.P("#include \"%s\"", inc)
	}
	cw.Nl()

	cw.P("const char *%s_op_str(int op);", cIdentLocal(f.Name))
	for _, name := range f.ConstOrder() {
		if es, ok := f.Consts[name].(*ir.EnumSet); ok && es.Header == "" {
			cw.P("const char *%s_str(enum %s value);", cIdentLocal(es.Name), cIdentLocal(es.Name))
		}
	}
	cw.Nl()

	for _, name := range f.NestedStructsOrder {
		st := f.NestedStructs[name]
		writeNestedStructDecl(cw, st)
	}

	for _, op := range f.Operations {
		for _, mode := range []string{"do", "dump", "event"} {
			ri, err := shape.Build(f, op, mode)
			if err != nil {
				return nil, fmt.Errorf("emit: %s/%s: %w", op.Name, mode, err)
			}
			if ri == nil {
				continue
			}
			writeOpUserDecls(cw, f, ri)
		}
	}

	cw.Nl()
	cw.P("#endif /* %s */", guard)
	return cw.Bytes(), nil
}

func writeNestedStructDecl(cw *CodeWriter, st *ir.Struct) {
	cw.Nl()
	ptr := ""
	if st.Recursive {
		ptr = "*"
	}
	cw.BlockStart(fmt.Sprintf("struct %s", cIdentLocal(st.Set.Name)))
	writePresenceGroups(cw, st.Members)
	for _, m := range st.Members {
		writeStructMember(cw, m, ptr, st.Set.Name)
	}
	cw.BlockEnd(";")
}

// writePresenceGroups emits the packed "_present" bitfield sub-struct
// plus the grouped "_len"/"_count" fields spec.md §4.3 requires:
// members are bucketed by AttrBase.Presence, and each non-empty bucket
// becomes one anonymous-struct-typed member named "_present"/"_len"/
// "_count" (mirrors the original generator's presence_member grouping).
func writePresenceGroups(cw *CodeWriter, members []ir.Attr) {
	groups := []struct {
		kind ir.PresenceKind
		tag  string
	}{
		{ir.PresencePresent, "present"},
		{ir.PresenceLen, "len"},
		{ir.PresenceCount, "count"},
	}
	any := false
	for _, g := range groups {
		var names []string
		for _, m := range members {
			if n, ok := m.(*ir.NestAttr); ok && isSelfNest(n.AttrBase, n.NestedSet) {
				continue
			}
			if m.Base().Presence == g.kind {
				names = append(names, m.Base().CName)
			}
		}
		if len(names) == 0 {
			continue
		}
		any = true
		cw.BlockStart("struct")
		for _, n := range names {
			if g.kind == ir.PresencePresent {
				cw.P("__u32 %s:1;", n)
			} else {
				cw.P("__u32 %s;", n)
			}
		}
		cw.BlockEnd(fmt.Sprintf("_%s;", g.tag))
	}
	if any {
		cw.Nl()
	}
}

// isSelfNest reports whether a's nested attribute set is the set the
// attribute itself belongs to - the one case a nest is stored as an
// owned pointer rather than an inline value, since the struct would
// otherwise contain itself (spec.md §4.3 "recursive nest").
func isSelfNest(base ir.AttrBase, nested *ir.AttrSet) bool {
	return nested != nil && base.Set != nil && nested.Name == base.Set.Name
}

func writeStructMember(cw *CodeWriter, a ir.Attr, selfPtr, ownerSetName string) {
	if v, ok := a.(*ir.MultiAttrAttr); ok {
		writeMultiAttrMember(cw, v)
		return
	}
	switch v := a.(type) {
	case *ir.ScalarAttr:
		cw.P("%s %s;", cScalarType(v), v.CName)
	case *ir.StringAttr:
		cw.P("char *%s;", v.CName)
	case *ir.BinaryAttr:
		cw.P("void *%s;", v.CName)
	case *ir.BinaryScalarArrayAttr:
		cw.P("%s *%s;", cScalarTypeName(v.ScalarType), v.CName)
	case *ir.BinaryStructAttr:
		cw.P("struct %s *%s;", cIdentLocal(v.StructName), v.CName)
	case *ir.FlagAttr, *ir.PadAttr, *ir.UnusedAttr:
		// layout-only, no accessor
	case *ir.Bitfield32Attr:
		cw.P("struct nla_bitfield32 %s;", v.CName)
	case *ir.NestAttr:
		if v.NestedSet == nil {
			break
		}
		if isSelfNest(v.AttrBase, v.NestedSet) {
			cw.P("struct %s %s%s;", cIdentLocal(v.NestedSet.Name), selfPtr, v.CName)
		} else {
			cw.P("struct %s %s;", cIdentLocal(v.NestedSet.Name), v.CName)
		}
	case *ir.NestTypeValueAttr:
		if v.NestedSet != nil {
			cw.P("struct %s %s;", cIdentLocal(v.NestedSet.Name), v.CName)
		}
	case *ir.ArrayNestAttr:
		switch v.ElemKind {
		case ir.ArrayElemNest:
			cw.P("struct %s *%s;", cIdentLocal(v.NestedSet.Name), v.CName)
		case ir.ArrayElemScalar:
			cw.P("%s *%s;", cScalarTypeName(v.ElemScalarType), v.CName)
		default:
			cw.P("unsigned char (*%s)[%d];", v.CName, v.Checks.ExactLen)
		}
	case *ir.SubMessageAttr:
		if v.NestedSet != nil {
			cw.P("struct %s %s;", cIdentLocal(v.NestedSet.Name), v.CName)
		}
	}
}

// writeMultiAttrMember emits storage for an attribute that may repeat
// on the wire: an owned array sized by the grouped "_count" member,
// shaped by the wrapped variant (spec.md §4.3 "multi-attr").
func writeMultiAttrMember(cw *CodeWriter, v *ir.MultiAttrAttr) {
	switch e := v.Elem.(type) {
	case *ir.ScalarAttr:
		cw.P("%s *%s;", cScalarType(e), v.CName)
	case *ir.StringAttr:
		cw.P("char **%s;", v.CName)
	case *ir.BinaryStructAttr:
		cw.P("struct %s *%s;", cIdentLocal(e.StructName), v.CName)
	case *ir.NestAttr:
		if e.NestedSet != nil {
			cw.P("struct %s *%s;", cIdentLocal(e.NestedSet.Name), v.CName)
		}
	default:
		cw.P("void *%s;", v.CName)
	}
}

func cScalarType(a *ir.ScalarAttr) string { return cScalarTypeName(a.ScalarType) }

func cScalarTypeName(t string) string {
	switch t {
	case "u8":
		return "__u8"
	case "u16":
		return "__u16"
	case "u32":
		return "__u32"
	case "u64":
		return "__u64"
	case "s8":
		return "__s8"
	case "s16":
		return "__s16"
	case "s32":
		return "__s32"
	case "s64":
		return "__s64"
	case "sint":
		return "int"
	default:
		return "unsigned int"
	}
}

func writeOpUserDecls(cw *CodeWriter, f *ir.Family, ri *shape.RenderInfo) {
	cw.Nl()
	opCName := ri.Op.CName
	if ri.Request != nil {
		cw.BlockStart(fmt.Sprintf("struct %s_%s_req", cIdentLocal(f.Name), opCName))
		if ri.HasNlmsgFlags {
			cw.P("__u16 _nlmsg_flags;")
			cw.Nl()
		}
		writePresenceGroups(cw, ri.Request.Members)
		for _, m := range ri.Request.Members {
			writeStructMember(cw, m, "", "")
		}
		cw.BlockEnd(";")
		cw.Nl()
		cw.P("struct %s_%s_req *%s_%s_req_alloc(void);", cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName)
		cw.P("void %s_%s_req_free(struct %s_%s_req *req);", cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName)
		if ri.HasNlmsgFlags {
			cw.P("void %s_%s_set_nlflags(struct %s_%s_req *req, __u16 flags);", cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName)
		}
		for _, m := range ri.Request.Members {
			writeSetterProto(cw, f, opCName, m)
		}
	}
	if ri.Reply != nil {
		cw.BlockStart(fmt.Sprintf("struct %s_%s_rsp", cIdentLocal(f.Name), opCName))
		writePresenceGroups(cw, ri.Reply.Members)
		for _, m := range ri.Reply.Members {
			writeStructMember(cw, m, "", "")
		}
		cw.BlockEnd(";")
		cw.Nl()
		cw.P("void %s_%s_rsp_free(struct %s_%s_rsp *rsp);", cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName)
	}
	switch ri.Mode {
	case "do":
		cw.P("struct %s_%s_rsp *%s_%s(struct ynl_sock *ys, struct %s_%s_req *req);",
			cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName)
	case "dump":
		cw.P("struct %s_%s_list *%s_%s_dump(struct ynl_sock *ys, struct %s_%s_req *req);",
			cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName)
	case "event":
		cw.P("void (*%s_%s_ntf)(struct %s_%s_rsp *rsp);", cIdentLocal(f.Name), opCName, cIdentLocal(f.Name), opCName)
	}
}
