package emit

import (
	"fmt"

	"github.com/m-lab/nlgen/ir"
	"github.com/m-lab/nlgen/shape"
)

// EmitUserSource renders the user-side source: op-name and
// enum-to-string tables, attribute policy tables, put/parse/free
// routines for every nested attribute set, per-op serializer/parser/
// free/setter routines, the notification dispatch table, and the
// family descriptor (spec.md §4.5 "User source").
func EmitUserSource(f *ir.Family, license, specRelPath string, args []string) ([]byte, error) {
	cw := NewCodeWriter()
	WriteBanner(cw, license, specRelPath, "user-source", args)
	cw.P("#include \"%s-user.h\"", cIdentLocal(f.Name))
	cw.Nl()

	writeOpStrTable(cw, f)
	writeEnumStrTables(cw, f)
	writePolicyArrays(cw, f) // user-side policy arrays mirror the kernel-side ones

	writeNestedRoutines(cw, f)

	for _, op := range f.Operations {
		for _, mode := range []string{"do", "dump", "event"} {
			ri, err := shape.Build(f, op, mode)
			if err != nil {
				return nil, fmt.Errorf("emit: %s/%s: %w", op.Name, mode, err)
			}
			if ri == nil {
				continue
			}
			writeOpBody(cw, f, ri)
		}
	}

	writeNotifyTable(cw, f)
	writeUserFamilyDescriptor(cw, f)

	return cw.Bytes(), nil
}

func writeOpStrTable(cw *CodeWriter, f *ir.Family) {
	cw.BlockStart(fmt.Sprintf("const char *%s_op_str(int op)", cIdentLocal(f.Name)))
	cw.BlockStart("switch (op)")
	for _, op := range f.Operations {
		cw.P("case %s%s:", op.NamePrefix, cUpperLocal(op.Name))
		cw.P("\treturn \"%s\";", op.Name)
	}
	cw.BlockEnd("")
	cw.P("return NULL;")
	cw.BlockEnd("")
	cw.Nl()
}

func writeEnumStrTables(cw *CodeWriter, f *ir.Family) {
	for _, name := range f.ConstOrder() {
		es, ok := f.Consts[name].(*ir.EnumSet)
		if !ok || es.Header != "" {
			continue
		}
		cw.BlockStart(fmt.Sprintf("const char *%s_str(enum %s value)", cIdentLocal(es.Name), cIdentLocal(es.Name)))
		if es.Kind == "flags" {
			cw.P("unsigned int index = ffs(value) - 1;")
			cw.Nl()
		}
		cw.BlockStart("switch (value)")
		for _, e := range es.Entries {
			cw.P("case %s:", e.CName)
			cw.P("\treturn \"%s\";", e.Name)
		}
		cw.BlockEnd("")
		cw.P("return NULL;")
		cw.BlockEnd("")
		cw.Nl()
	}
}

// writeNestedRoutines emits put/parse/free for every nested attribute
// set reachable from some operation (spec.md §4.5 "nested put/parse/
// free routines"). Prototypes for all of them are written up front so
// a recursive or forward-referencing nest never calls an undeclared
// symbol, regardless of NestedStructsOrder.
func writeNestedRoutines(cw *CodeWriter, f *ir.Family) {
	if len(f.NestedStructsOrder) == 0 {
		return
	}
	cw.P("/* put/parse/free routines for nested attribute sets */")
	for _, name := range f.NestedStructsOrder {
		writeNestedProtos(cw, f.NestedStructs[name])
	}
	cw.Nl()

	for _, name := range f.NestedStructsOrder {
		writeNestedBody(cw, f.NestedStructs[name])
	}
}

func writeNestedProtos(cw *CodeWriter, st *ir.Struct) {
	name := cIdentLocal(st.Set.Name)
	if st.Request {
		cw.P("static int %s_put(struct nlmsghdr *nlh, unsigned int attr_type, struct %s *obj);", name, name)
	}
	if st.Reply {
		cw.P("static int %s_parse(const struct nlattr *nested, struct %s *obj);", name, name)
	}
	cw.P("static void %s_free(struct %s *obj);", name, name)
}

func writeNestedBody(cw *CodeWriter, st *ir.Struct) {
	name := cIdentLocal(st.Set.Name)

	if st.Request {
		cw.WriteFuncProto("static int", name+"_put",
			[]string{"struct nlmsghdr *nlh", "unsigned int attr_type", fmt.Sprintf("struct %s *obj", name)}, "")
		cw.BlockStart("")
		cw.P("struct nlattr *nest;")
		if needsArrayVar(st.Members) {
			cw.P("struct nlattr *array;")
		}
		if needsLoopCounter(st.Members) {
			cw.P("unsigned int i;")
		}
		cw.Nl()
		cw.P("nest = ynl_attr_nest_start(nlh, attr_type);")
		for _, m := range st.Members {
			writePutMember(cw, m, "obj")
		}
		cw.P("ynl_attr_nest_end(nlh, nest);")
		cw.Nl()
		cw.P("return 0;")
		cw.BlockEnd("")
		cw.Nl()
	}

	if st.Reply {
		cw.WriteFuncProto("static int", name+"_parse",
			[]string{"const struct nlattr *nested", fmt.Sprintf("struct %s *obj", name)}, "")
		cw.BlockStart("")
		writeParseBody(cw, st.Members, "obj", "ynl_attr_for_each_nested(attr, nested)")
		cw.P("return 0;")
		cw.BlockEnd("")
		cw.Nl()
	}

	cw.WriteFuncProto("static void", name+"_free", []string{fmt.Sprintf("struct %s *obj", name)}, "")
	cw.BlockStart("")
	if freeNeedsIter(st.Members) {
		cw.P("unsigned int i;")
		cw.Nl()
	}
	for _, m := range st.Members {
		writeFreeMember(cw, m, "obj")
	}
	cw.BlockEnd("")
	cw.Nl()
}

func writeOpBody(cw *CodeWriter, f *ir.Family, ri *shape.RenderInfo) {
	opCName := ri.Op.CName
	prefix := cIdentLocal(f.Name) + "_" + opCName

	if ri.Request != nil {
		cw.WriteFuncProto("struct "+cIdentLocal(f.Name)+"_"+opCName+"_req *", prefix+"_req_alloc", []string{"void"}, "")
		cw.BlockStart("")
		cw.P("return calloc(1, sizeof(struct %s_%s_req));", cIdentLocal(f.Name), opCName)
		cw.BlockEnd("")
		cw.Nl()

		cw.WriteFuncProto("void", prefix+"_req_free", []string{fmt.Sprintf("struct %s_%s_req *req", cIdentLocal(f.Name), opCName)}, "")
		cw.BlockStart("")
		if freeNeedsIter(ri.Request.Members) {
			cw.P("unsigned int i;")
			cw.Nl()
		}
		for _, m := range ri.Request.Members {
			writeFreeMember(cw, m, "req")
		}
		cw.P("free(req);")
		cw.BlockEnd("")
		cw.Nl()

		if ri.HasNlmsgFlags {
			cw.WriteFuncProto("void", prefix+"_set_nlflags",
				[]string{fmt.Sprintf("struct %s_%s_req *req", cIdentLocal(f.Name), opCName), "__u16 flags"}, "")
			cw.BlockStart("")
			cw.P("req->_nlmsg_flags = flags;")
			cw.BlockEnd("")
			cw.Nl()
		}

		for _, m := range ri.Request.Members {
			writeSetterDef(cw, f, opCName, m)
		}

		cw.WriteFuncProto("static int", prefix+"_req_put",
			[]string{"struct nlmsghdr *nlh", fmt.Sprintf("struct %s_%s_req *req", cIdentLocal(f.Name), opCName)}, "")
		cw.BlockStart("")
		if needsArrayVar(ri.Request.Members) {
			cw.P("struct nlattr *array;")
		}
		if needsLoopCounter(ri.Request.Members) {
			cw.P("unsigned int i;")
		}
		if needsArrayVar(ri.Request.Members) || needsLoopCounter(ri.Request.Members) {
			cw.Nl()
		}
		for _, m := range ri.Request.Members {
			writePutMember(cw, m, "req")
		}
		cw.P("return 0;")
		cw.BlockEnd("")
		cw.Nl()
	}

	if ri.Reply != nil {
		cw.WriteFuncProto("void", prefix+"_rsp_free", []string{fmt.Sprintf("struct %s_%s_rsp *rsp", cIdentLocal(f.Name), opCName)}, "")
		cw.BlockStart("")
		if freeNeedsIter(ri.Reply.Members) {
			cw.P("unsigned int i;")
			cw.Nl()
		}
		for _, m := range ri.Reply.Members {
			writeFreeMember(cw, m, "rsp")
		}
		cw.P("free(rsp);")
		cw.BlockEnd("")
		cw.Nl()

		cw.WriteFuncProto("static int", prefix+"_rsp_parse",
			[]string{"const struct nlmsghdr *nlh", fmt.Sprintf("struct %s_%s_rsp *rsp", cIdentLocal(f.Name), opCName)}, "")
		cw.BlockStart("")
		writeParseBody(cw, ri.Reply.Members, "rsp", "ynl_attr_for_each(attr, nlh)")
		cw.P("return 0;")
		cw.BlockEnd("")
		cw.Nl()
	}

	switch ri.Mode {
	case "do":
		if ri.Request != nil {
			cw.WriteFuncProto("struct "+cIdentLocal(f.Name)+"_"+opCName+"_rsp *", prefix,
				[]string{"struct ynl_sock *ys", fmt.Sprintf("struct %s_%s_req *req", cIdentLocal(f.Name), opCName)}, "")
			cw.BlockStart("")
			cw.P("return ynl_do_request(ys, %s%s, %s_req_put, req, %s_rsp_parse);",
				ri.Op.NamePrefix, cUpperLocal(ri.Op.Name), prefix, prefix)
			cw.BlockEnd("")
			cw.Nl()
		}
	case "dump":
		cw.WriteFuncProto("struct "+cIdentLocal(f.Name)+"_"+opCName+"_list *", prefix+"_dump",
			[]string{"struct ynl_sock *ys", fmt.Sprintf("struct %s_%s_req *req", cIdentLocal(f.Name), opCName)}, "")
		cw.BlockStart("")
		cw.P("return ynl_dump_request(ys, %s%s, %s_req_put, %s_rsp_parse);",
			ri.Op.NamePrefix, cUpperLocal(ri.Op.Name), prefix, prefix)
		cw.BlockEnd("")
		cw.Nl()
	}
}

func writeSetterDef(cw *CodeWriter, f *ir.Family, opCName string, m ir.Attr) {
	params, ok := setterParams(m)
	if !ok {
		return
	}
	args := append([]string{fmt.Sprintf("struct %s_%s_req *req", cIdentLocal(f.Name), opCName)}, params...)
	name := fmt.Sprintf("%s_%s_set_%s", cIdentLocal(f.Name), opCName, m.Base().CName)
	cw.WriteFuncProto("void", name, args, "")
	cw.BlockStart("")
	setterBody(cw, "req", m)
	cw.BlockEnd("")
	cw.Nl()
}

// needsLoopCounter reports whether any member's put/parse needs a
// plain "unsigned int i" loop index - every count-presence member
// (indexed-array, binary-scalar-array, multi-attr).
func needsLoopCounter(members []ir.Attr) bool {
	for _, m := range members {
		switch m.(type) {
		case *ir.ArrayNestAttr, *ir.BinaryScalarArrayAttr, *ir.MultiAttrAttr:
			return true
		}
	}
	return false
}

// needsArrayVar reports whether some member's put opens its own nest
// (indexed-array), requiring a "struct nlattr *array" handle distinct
// from the enclosing "nest"/top-level message.
func needsArrayVar(members []ir.Attr) bool {
	for _, m := range members {
		if _, ok := m.(*ir.ArrayNestAttr); ok {
			return true
		}
	}
	return false
}

// freeNeedsIter mirrors the original generator's free_needs_iter: true
// when some member's free walks an owned array element by element
// (spec.md §4.3 "free").
func freeNeedsIter(members []ir.Attr) bool {
	for _, m := range members {
		switch v := m.(type) {
		case *ir.ArrayNestAttr:
			if v.ElemKind == ir.ArrayElemNest {
				return true
			}
		case *ir.MultiAttrAttr:
			switch v.Elem.(type) {
			case *ir.StringAttr, *ir.NestAttr:
				return true
			}
		}
	}
	return false
}

func writeFreeMember(cw *CodeWriter, a ir.Attr, owner string) {
	if v, isMulti := a.(*ir.MultiAttrAttr); isMulti {
		writeMultiAttrFree(cw, owner, v)
		return
	}
	switch v := a.(type) {
	case *ir.StringAttr:
		cw.P("free(%s->%s);", owner, v.CName)
	case *ir.BinaryAttr:
		cw.P("free(%s->%s);", owner, v.CName)
	case *ir.BinaryStructAttr:
		cw.P("free(%s->%s);", owner, v.CName)
	case *ir.BinaryScalarArrayAttr:
		cw.P("free(%s->%s);", owner, v.CName)
	case *ir.NestAttr:
		if v.NestedSet == nil {
			return
		}
		name := cIdentLocal(v.NestedSet.Name)
		if isSelfNest(v.AttrBase, v.NestedSet) {
			cw.P("if (%s->%s) {", owner, v.CName)
			cw.indent++
			cw.P("%s_free(%s->%s);", name, owner, v.CName)
			cw.P("free(%s->%s);", owner, v.CName)
			cw.indent--
			cw.P("}")
			return
		}
		cw.P("%s_free(&%s->%s);", name, owner, v.CName)
	case *ir.SubMessageAttr:
		if v.NestedSet == nil {
			return
		}
		cw.P("%s_free(&%s->%s);", cIdentLocal(v.NestedSet.Name), owner, v.CName)
	case *ir.ArrayNestAttr:
		switch v.ElemKind {
		case ir.ArrayElemNest:
			cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
			cw.P("\t%s_free(&%s->%s[i]);", cIdentLocal(v.NestedSet.Name), owner, v.CName)
			cw.P("free(%s->%s);", owner, v.CName)
		default:
			cw.P("free(%s->%s);", owner, v.CName)
		}
	default:
		// scalar / flag / pad / unused / bitfield32: no owned storage.
	}
}

func writeMultiAttrFree(cw *CodeWriter, owner string, v *ir.MultiAttrAttr) {
	switch e := v.Elem.(type) {
	case *ir.ScalarAttr, *ir.BinaryStructAttr:
		cw.P("free(%s->%s);", owner, v.CName)
	case *ir.StringAttr:
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\tfree(%s->%s[i]);", owner, v.CName)
		cw.P("free(%s->%s);", owner, v.CName)
	case *ir.NestAttr:
		if e.NestedSet == nil {
			return
		}
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\t%s_free(&%s->%s[i]);", cIdentLocal(e.NestedSet.Name), owner, v.CName)
		cw.P("free(%s->%s);", owner, v.CName)
	}
}

// writePutMember emits the serialization for one member, guarding
// present/len-presence attributes with a test of the matching bit and
// letting count-presence attributes guard themselves via their loop
// (spec.md §4.3 "attr_put", grounded on the original generator's
// Type.attr_put family).
func writePutMember(cw *CodeWriter, a ir.Attr, owner string) {
	if v, isMulti := a.(*ir.MultiAttrAttr); isMulti {
		writeMultiAttrPut(cw, owner, v)
		return
	}
	switch v := a.(type) {
	case *ir.ScalarAttr:
		cw.P("if (%s->_present.%s)", owner, v.CName)
		cw.P("\tynl_attr_put_%s(nlh, %s, %s->%s);", v.ScalarType, v.EnumName, owner, v.CName)
	case *ir.StringAttr:
		cw.P("if (%s->_len.%s)", owner, v.CName)
		cw.P("\tynl_attr_put_str(nlh, %s, %s->%s);", v.EnumName, owner, v.CName)
	case *ir.FlagAttr:
		cw.P("if (%s->_present.%s)", owner, v.CName)
		cw.P("\tynl_attr_put(nlh, %s, NULL, 0);", v.EnumName)
	case *ir.BinaryAttr:
		cw.P("if (%s->_len.%s)", owner, v.CName)
		cw.P("\tynl_attr_put(nlh, %s, %s->%s, %s->_len.%s);", v.EnumName, owner, v.CName, owner, v.CName)
	case *ir.BinaryStructAttr:
		cw.P("if (%s->_len.%s)", owner, v.CName)
		cw.P("\tynl_attr_put(nlh, %s, %s->%s, %s->_len.%s);", v.EnumName, owner, v.CName, owner, v.CName)
	case *ir.BinaryScalarArrayAttr:
		cw.BlockStart(fmt.Sprintf("if (%s->_count.%s)", owner, v.CName))
		cw.P("i = %s->_count.%s * sizeof(%s);", owner, v.CName, cScalarTypeName(v.ScalarType))
		cw.P("ynl_attr_put(nlh, %s, %s->%s, i);", v.EnumName, owner, v.CName)
		cw.BlockEnd("")
	case *ir.Bitfield32Attr:
		cw.P("if (%s->_present.%s)", owner, v.CName)
		cw.P("\tynl_attr_put(nlh, %s, &%s->%s, sizeof(struct nla_bitfield32));", v.EnumName, owner, v.CName)
	case *ir.NestAttr:
		writeNestPut(cw, owner, v.AttrBase, v.NestedSet)
	case *ir.NestTypeValueAttr:
		// parsed from the kernel only; this family never puts one.
	case *ir.ArrayNestAttr:
		writeArrayNestPut(cw, owner, v)
	case *ir.SubMessageAttr:
		writeNestPut(cw, owner, v.AttrBase, v.NestedSet)
	}
}

func writeNestPut(cw *CodeWriter, owner string, base ir.AttrBase, nested *ir.AttrSet) {
	if nested == nil {
		return
	}
	name := cIdentLocal(nested.Name)
	if isSelfNest(base, nested) {
		cw.P("if (%s->%s)", owner, base.CName)
		cw.P("\t%s_put(nlh, %s, %s->%s);", name, base.EnumName, owner, base.CName)
		return
	}
	cw.P("if (%s->_present.%s)", owner, base.CName)
	cw.P("\t%s_put(nlh, %s, &%s->%s);", name, base.EnumName, owner, base.CName)
}

func writeArrayNestPut(cw *CodeWriter, owner string, v *ir.ArrayNestAttr) {
	cw.P("if (%s->_count.%s) {", owner, v.CName)
	cw.indent++
	cw.P("array = ynl_attr_nest_start(nlh, %s);", v.EnumName)
	switch v.ElemKind {
	case ir.ArrayElemNest:
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\t%s_put(nlh, i, &%s->%s[i]);", cIdentLocal(v.NestedSet.Name), owner, v.CName)
	case ir.ArrayElemScalar:
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\tynl_attr_put_%s(nlh, i, %s->%s[i]);", v.ElemScalarType, owner, v.CName)
	default:
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\tynl_attr_put(nlh, i, %s->%s[i], %d);", owner, v.CName, v.Checks.ExactLen)
	}
	cw.P("ynl_attr_nest_end(nlh, array);")
	cw.indent--
	cw.P("}")
}

func writeMultiAttrPut(cw *CodeWriter, owner string, v *ir.MultiAttrAttr) {
	switch e := v.Elem.(type) {
	case *ir.ScalarAttr:
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\tynl_attr_put_%s(nlh, %s, %s->%s[i]);", e.ScalarType, v.EnumName, owner, v.CName)
	case *ir.StringAttr:
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\tynl_attr_put_str(nlh, %s, %s->%s[i]);", v.EnumName, owner, v.CName)
	case *ir.BinaryStructAttr:
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\tynl_attr_put(nlh, %s, &%s->%s[i], sizeof(struct %s));", v.EnumName, owner, v.CName, cIdentLocal(e.StructName))
	case *ir.NestAttr:
		if e.NestedSet == nil {
			return
		}
		cw.P("for (i = 0; i < %s->_count.%s; i++)", owner, v.CName)
		cw.P("\t%s_put(nlh, %s, &%s->%s[i]);", cIdentLocal(e.NestedSet.Name), v.EnumName, owner, v.CName)
	}
}

// writeParseBody emits the body of a parse routine: declare the
// iteration var plus one counter per count-presence member, run one
// pass over the attribute stream assigning/validating present-
// and len-presence members and tallying count-presence ones, then a
// second pass per count-presence member that allocates the owned
// array and fills it (spec.md §8 scenario 5 "counting then
// allocating", grounded on the original generator's _multi_parse).
// A binary-scalar-array member is the exception: the first pass reads
// it whole and the second pass writes nothing for it.
func writeParseBody(cw *CodeWriter, members []ir.Attr, owner, iterExpr string) {
	var counted []ir.Attr
	for _, m := range members {
		if isCountPresence(m) {
			counted = append(counted, m)
		}
	}

	cw.P("const struct nlattr *attr;")
	for _, m := range counted {
		cw.P("unsigned int n_%s = 0;", m.Base().CName)
	}
	if len(counted) > 0 {
		cw.P("unsigned int i;")
	}
	cw.Nl()

	cw.BlockStart(iterExpr)
	cw.BlockStart("switch (ynl_attr_type(attr))")
	for _, m := range members {
		writeParseCase(cw, m, owner)
	}
	cw.BlockEnd("")
	cw.BlockEnd("")
	cw.Nl()

	for _, m := range counted {
		writeCountFill(cw, m, owner, iterExpr)
	}
}

func isCountPresence(a ir.Attr) bool {
	return a.Base().Presence == ir.PresenceCount
}

func writeParseCase(cw *CodeWriter, a ir.Attr, owner string) {
	b := a.Base()
	cw.P("case %s:", b.EnumName)
	cw.indent++
	switch v := a.(type) {
	case *ir.ScalarAttr:
		cw.P("%s->_present.%s = 1;", owner, v.CName)
		cw.P("%s->%s = ynl_attr_get_%s(attr);", owner, v.CName, v.ScalarType)
	case *ir.FlagAttr:
		cw.P("%s->_present.%s = 1;", owner, v.CName)
	case *ir.StringAttr:
		cw.P("%s->_len.%s = ynl_attr_data_len(attr);", owner, v.CName)
		cw.P("%s->%s = malloc(%s->_len.%s + 1);", owner, v.CName, owner, v.CName)
		cw.P("memcpy(%s->%s, ynl_attr_get_str(attr), %s->_len.%s);", owner, v.CName, owner, v.CName)
		cw.P("%s->%s[%s->_len.%s] = 0;", owner, v.CName, owner, v.CName)
	case *ir.BinaryAttr:
		cw.P("%s->_len.%s = ynl_attr_data_len(attr);", owner, v.CName)
		cw.P("%s->%s = malloc(%s->_len.%s);", owner, v.CName, owner, v.CName)
		cw.P("memcpy(%s->%s, ynl_attr_data(attr), %s->_len.%s);", owner, v.CName, owner, v.CName)
	case *ir.BinaryStructAttr:
		structSz := fmt.Sprintf("sizeof(struct %s)", cIdentLocal(v.StructName))
		cw.P("%s->_len.%s = ynl_attr_data_len(attr);", owner, v.CName)
		cw.P("if (%s->_len.%s < %s)", owner, v.CName, structSz)
		cw.P("\t%s->%s = calloc(1, %s);", owner, v.CName, structSz)
		cw.P("else")
		cw.P("\t%s->%s = malloc(%s->_len.%s);", owner, v.CName, owner, v.CName)
		cw.P("memcpy(%s->%s, ynl_attr_data(attr), %s->_len.%s);", owner, v.CName, owner, v.CName)
	case *ir.BinaryScalarArrayAttr:
		scalarSz := fmt.Sprintf("sizeof(%s)", cScalarTypeName(v.ScalarType))
		cw.P("%s->_count.%s = ynl_attr_data_len(attr) / %s;", owner, v.CName, scalarSz)
		cw.P("%s->%s = malloc(%s->_count.%s * %s);", owner, v.CName, owner, v.CName, scalarSz)
		cw.P("memcpy(%s->%s, ynl_attr_data(attr), %s->_count.%s * %s);", owner, v.CName, owner, v.CName, scalarSz)
	case *ir.Bitfield32Attr:
		cw.P("%s->_present.%s = 1;", owner, v.CName)
		cw.P("memcpy(&%s->%s, ynl_attr_data(attr), sizeof(struct nla_bitfield32));", owner, v.CName)
	case *ir.NestAttr:
		writeNestParseCase(cw, owner, v.AttrBase, v.NestedSet)
	case *ir.NestTypeValueAttr:
		if v.NestedSet != nil {
			cw.P("%s->_present.%s = 1;", owner, v.CName)
			cw.P("if (%s_parse(attr, &%s->%s))", cIdentLocal(v.NestedSet.Name), owner, v.CName)
			cw.P("\treturn -1;")
		}
	case *ir.ArrayNestAttr:
		cw.P("n_%s++;", v.CName)
	case *ir.SubMessageAttr:
		writeNestParseCase(cw, owner, v.AttrBase, v.NestedSet)
	case *ir.MultiAttrAttr:
		cw.P("n_%s++;", v.CName)
	}
	cw.P("break;")
	cw.indent--
}

func writeNestParseCase(cw *CodeWriter, owner string, base ir.AttrBase, nested *ir.AttrSet) {
	if nested == nil {
		return
	}
	name := cIdentLocal(nested.Name)
	if isSelfNest(base, nested) {
		cw.P("%s->%s = malloc(sizeof(struct %s));", owner, base.CName, name)
		cw.P("if (%s_parse(attr, %s->%s))", name, owner, base.CName)
		cw.P("\treturn -1;")
		return
	}
	cw.P("%s->_present.%s = 1;", owner, base.CName)
	cw.P("if (%s_parse(attr, &%s->%s))", name, owner, base.CName)
	cw.P("\treturn -1;")
}

// writeCountFill emits the second pass for one count-presence member:
// allocate the owned array sized by the first pass's tally, then walk
// the attribute stream again filling it in (spec.md §8 scenario 5).
func writeCountFill(cw *CodeWriter, a ir.Attr, owner, iterExpr string) {
	if v, isMulti := a.(*ir.MultiAttrAttr); isMulti {
		writeMultiAttrCountFill(cw, owner, v, iterExpr)
		return
	}
	v, ok := a.(*ir.ArrayNestAttr)
	if !ok {
		return
	}
	cw.BlockStart(fmt.Sprintf("if (n_%s)", v.CName))
	cw.P("%s->%s = calloc(n_%s, sizeof(*%s->%s));", owner, v.CName, v.CName, owner, v.CName)
	cw.P("%s->_count.%s = n_%s;", owner, v.CName, v.CName)
	cw.P("i = 0;")
	cw.BlockStart(iterExpr)
	cw.BlockStart(fmt.Sprintf("if (ynl_attr_type(attr) == %s)", v.EnumName))
	cw.BlockStart(fmt.Sprintf("ynl_attr_for_each_nested(attr2, attr)"))
	switch v.ElemKind {
	case ir.ArrayElemNest:
		cw.P("if (%s_parse(attr2, &%s->%s[i]))", cIdentLocal(v.NestedSet.Name), owner, v.CName)
		cw.P("\treturn -1;")
	case ir.ArrayElemScalar:
		cw.P("%s->%s[i] = ynl_attr_get_%s(attr2);", owner, v.CName, v.ElemScalarType)
	default:
		cw.P("memcpy(%s->%s[i], ynl_attr_data(attr2), %d);", owner, v.CName, v.Checks.ExactLen)
	}
	cw.P("i++;")
	cw.BlockEnd("")
	cw.BlockEnd("")
	cw.BlockEnd("")
	cw.BlockEnd("")
	cw.Nl()
}

func writeMultiAttrCountFill(cw *CodeWriter, owner string, v *ir.MultiAttrAttr, iterExpr string) {
	cw.BlockStart(fmt.Sprintf("if (n_%s)", v.CName))
	cw.P("%s->%s = calloc(n_%s, sizeof(*%s->%s));", owner, v.CName, v.CName, owner, v.CName)
	cw.P("%s->_count.%s = n_%s;", owner, v.CName, v.CName)
	cw.P("i = 0;")
	cw.BlockStart(iterExpr)
	cw.BlockStart(fmt.Sprintf("if (ynl_attr_type(attr) == %s)", v.EnumName))
	switch e := v.Elem.(type) {
	case *ir.ScalarAttr:
		cw.P("%s->%s[i] = ynl_attr_get_%s(attr);", owner, v.CName, e.ScalarType)
	case *ir.StringAttr:
		cw.P("%s->%s[i] = strdup(ynl_attr_get_str(attr));", owner, v.CName)
	case *ir.NestAttr:
		if e.NestedSet != nil {
			cw.P("if (%s_parse(attr, &%s->%s[i]))", cIdentLocal(e.NestedSet.Name), owner, v.CName)
			cw.P("\treturn -1;")
		}
	case *ir.BinaryStructAttr:
		cw.P("memcpy(&%s->%s[i], ynl_attr_data(attr), sizeof(struct %s));", owner, v.CName, cIdentLocal(e.StructName))
	}
	cw.P("i++;")
	cw.BlockEnd("")
	cw.BlockEnd("")
	cw.BlockEnd("")
	cw.Nl()
}

func writeNotifyTable(cw *CodeWriter, f *ir.Family) {
	var ntf []*ir.Operation
	for _, op := range f.Operations {
		if op.HasNtf || op.Event != nil {
			ntf = append(ntf, op)
		}
	}
	if len(ntf) == 0 {
		return
	}
	cw.P("static const struct ynl_ntf_info %s_ntf_info[] = {", cIdentLocal(f.Name))
	cw.indent++
	for _, op := range ntf {
		cw.P("[%s%s] = { .cb = %s_%s_rsp_parse, .policy = %s_nl_policy, },",
			op.NamePrefix, cUpperLocal(op.Name), cIdentLocal(f.Name), op.CName, op.CName)
	}
	cw.indent--
	cw.P("};")
	cw.Nl()
}

func writeUserFamilyDescriptor(cw *CodeWriter, f *ir.Family) {
	cw.P("const struct ynl_family %s_ynl_family = {", cIdentLocal(f.Name))
	cw.indent++
	cw.P(".name\t\t= \"%s\",", f.Name)
	cw.indent--
	cw.P("};")
}
