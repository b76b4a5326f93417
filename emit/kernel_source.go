package emit

import (
	"fmt"

	"github.com/m-lab/nlgen/ir"
)

// EmitKernelSource renders the kernel-side source: range tables,
// sparse-enum validators, attribute policy arrays, the op table (in
// the flavor kernel-policy selects), the multicast group table, and
// the family descriptor (spec.md §4.5 "Kernel source").
func EmitKernelSource(f *ir.Family, license, specRelPath string, args []string) []byte {
	cw := NewCodeWriter()
	WriteBanner(cw, license, specRelPath, "kernel-source", args)
	cw.P("#include \"%s.h\"", cIdentLocal(f.Name))
	cw.Nl()

	writeRangeTables(cw, f)
	writeSparseValidators(cw, f)
	writePolicyArrays(cw, f)
	writeOpTable(cw, f)
	writeMcastTable(cw, f)
	writeFamilyDescriptor(cw, f)

	return cw.Bytes()
}

func allAttrs(f *ir.Family) []ir.Attr {
	var out []ir.Attr
	for _, name := range f.AttrSetOrder() {
		out = append(out, f.AttrSets[name].Attrs...)
	}
	return out
}

func writeRangeTables(cw *CodeWriter, f *ir.Family) {
	for _, a := range allAttrs(f) {
		s, ok := a.(*ir.ScalarAttr)
		if !ok || !s.Checks.FullRange {
			continue
		}
		cw.P("static const struct netlink_range_validation %s_range = {", s.CName)
		cw.P("\t.min = %d,", s.Checks.Min)
		cw.P("\t.max = %d,", s.Checks.Max)
		cw.P("};")
		cw.Nl()
	}
}

func writeSparseValidators(cw *CodeWriter, f *ir.Family) {
	for _, a := range allAttrs(f) {
		s, ok := a.(*ir.ScalarAttr)
		if !ok || !s.Checks.Sparse || s.Enum == nil {
			continue
		}
		cw.WriteFuncProto("static int", s.CName+"_validate",
			[]string{"const struct nlattr *attr", "struct netlink_ext_ack *extack"}, "")
		cw.BlockStart("")
		cw.BlockStart(fmt.Sprintf("switch (nla_get_u32(attr))"))
		for _, e := range s.Enum.Entries {
			cw.P("case %d:", e.Value)
		}
		cw.P("\treturn 0;")
		cw.BlockEnd("")
		cw.P("NL_SET_ERR_MSG_ATTR(extack, attr, \"invalid enum value\");")
		cw.P("return -EINVAL;")
		cw.BlockEnd("")
		cw.Nl()
	}
}

func writePolicyArrays(cw *CodeWriter, f *ir.Family) {
	if f.KernelPolicy == "global" && f.GlobalPolicySet != nil {
		writeOnePolicyArray(cw, cIdentLocal(f.GlobalPolicySet.Name)+"_nl_policy", f.GlobalPolicySet, f.GlobalPolicyOrder)
		return
	}
	for _, name := range f.NestedStructsOrder {
		st := f.NestedStructs[name]
		if !st.Request {
			continue
		}
		var names []string
		for _, m := range st.Members {
			names = append(names, m.Base().Name)
		}
		writeOnePolicyArray(cw, cIdentLocal(st.Set.Name)+"_nl_policy", st.Set, names)
	}
	if f.KernelPolicy == "split" {
		for _, op := range f.Operations {
			if op.AttrSet == nil {
				continue
			}
			if op.Do != nil && len(op.Do.RequestAttrs) > 0 {
				writeOnePolicyArray(cw, op.CName+"_do_nl_policy", op.AttrSet, op.Do.RequestAttrs)
			}
			if op.Dump != nil && len(op.Dump.RequestAttrs) > 0 {
				writeOnePolicyArray(cw, op.CName+"_dump_nl_policy", op.AttrSet, op.Dump.RequestAttrs)
			}
		}
	} else if f.KernelPolicy == "per-op" {
		for _, op := range f.Operations {
			if op.AttrSet == nil {
				continue
			}
			names := map[string]bool{}
			var order []string
			for _, spec := range op.Specs() {
				for _, n := range spec.RequestAttrs {
					if !names[n] {
						names[n] = true
						order = append(order, n)
					}
				}
			}
			if len(order) > 0 {
				writeOnePolicyArray(cw, op.CName+"_nl_policy", op.AttrSet, order)
			}
		}
	}
}

func writeOnePolicyArray(cw *CodeWriter, arrayName string, set *ir.AttrSet, names []string) {
	cw.P("const struct nla_policy %s[] = {", arrayName)
	cw.indent++
	for _, n := range names {
		a, ok := set.ByName(n)
		if !ok {
			continue
		}
		cw.P("[%s] = %s,", a.Base().EnumName, attrPolicyClause(a))
	}
	cw.indent--
	cw.P("};")
	cw.Nl()
}

func attrPolicyClause(a ir.Attr) string {
	a = unwrapMulti(a)
	switch v := a.(type) {
	case *ir.ScalarAttr:
		return ScalarPolicy(v.CName, v)
	case *ir.StringAttr:
		return StringPolicy(v)
	case *ir.BinaryAttr:
		return BinaryPolicy(v.Checks)
	case *ir.BinaryScalarArrayAttr:
		return BinaryPolicy(v.Checks)
	case *ir.BinaryStructAttr:
		return BinaryPolicy(v.Checks)
	case *ir.Bitfield32Attr:
		mask := uint64(0)
		if v.Enum != nil {
			mask = v.Enum.Mask()
		}
		return fmt.Sprintf("NLA_POLICY_BITFIELD32(0x%x)", mask)
	case *ir.FlagAttr:
		return "{ .type = NLA_FLAG }"
	case *ir.NestAttr, *ir.NestTypeValueAttr, *ir.ArrayNestAttr:
		return "{ .type = NLA_NESTED }"
	case *ir.SubMessageAttr:
		return SubMessagePolicy(v)
	default:
		return "{ .type = NLA_UNSPEC }"
	}
}

func unwrapMulti(a ir.Attr) ir.Attr {
	if m, ok := a.(*ir.MultiAttrAttr); ok {
		return m.Elem
	}
	return a
}

func writeOpTable(cw *CodeWriter, f *ir.Family) {
	switch f.KernelPolicy {
	case "split":
		cw.P("static const struct genl_split_ops %s_nl_ops[] = {", cIdentLocal(f.Name))
		cw.indent++
		for _, op := range f.Operations {
			if op.Do != nil {
				cw.P("{")
				cw.indent++
				cw.P(".cmd\t\t= %s%s,", op.NamePrefix, cUpperLocal(op.Name))
				cw.P(".doit\t\t= %s_%s_doit,", cIdentLocal(f.Name), op.CName)
				cw.P(".flags\t\t= GENL_CMD_CAP_DO,")
				cw.indent--
				cw.P("},")
			}
			if op.Dump != nil {
				cw.P("{")
				cw.indent++
				cw.P(".cmd\t\t= %s%s,", op.NamePrefix, cUpperLocal(op.Name))
				cw.P(".dumpit\t\t= %s_%s_dumpit,", cIdentLocal(f.Name), op.CName)
				cw.P(".flags\t\t= GENL_CMD_CAP_DUMP,")
				cw.indent--
				cw.P("},")
			}
		}
		cw.indent--
		cw.P("};")
	default:
		cw.P("static const struct genl_ops %s_nl_ops[] = {", cIdentLocal(f.Name))
		cw.indent++
		for _, op := range f.Operations {
			if op.Do == nil && op.Dump == nil {
				continue
			}
			cw.P("{")
			cw.indent++
			cw.P(".cmd\t\t= %s%s,", op.NamePrefix, cUpperLocal(op.Name))
			if op.Do != nil {
				cw.P(".doit\t\t= %s_%s_doit,", cIdentLocal(f.Name), op.CName)
			}
			if op.Dump != nil {
				cw.P(".dumpit\t\t= %s_%s_dumpit,", cIdentLocal(f.Name), op.CName)
			}
			if op.AttrSet != nil {
				cw.P(".policy\t\t= %s_nl_policy,", op.CName)
				cw.P(".maxattr\t= %s_MAX,", cUpperLocal(op.AttrSet.Name))
			}
			cw.indent--
			cw.P("},")
		}
		cw.indent--
		cw.P("};")
	}
	cw.Nl()
}

func writeMcastTable(cw *CodeWriter, f *ir.Family) {
	if len(f.MulticastGroups) == 0 {
		return
	}
	cw.P("static const struct genl_multicast_group %s_nl_mcgrps[] = {", cIdentLocal(f.Name))
	cw.indent++
	for _, g := range f.MulticastGroups {
		cw.P("[%s_NLGRP_%s] = { \"%s\", },", cUpperLocal(f.Name), cUpperLocal(g), g)
	}
	cw.indent--
	cw.P("};")
	cw.Nl()
}

func writeFamilyDescriptor(cw *CodeWriter, f *ir.Family) {
	if sp := f.KernelFamily.SockPriv; sp != "" {
		for _, hook := range []string{"init", "destroy"} {
			cw.P("static void __%s_nl_sock_priv_%s(void *priv)", cIdentLocal(f.Name), hook)
			cw.BlockStart("")
			cw.P("struct %s *ptr = priv;", sp)
			cw.Nl()
			cw.P("%s_%s(ptr);", sp, hook)
			cw.BlockEnd("")
			cw.Nl()
		}
	}
	cw.P("struct genl_family %s_nl_family __ro_after_init = {", cIdentLocal(f.Name))
	cw.indent++
	cw.P(".name\t\t= %s_FAMILY_NAME,", cUpperLocal(f.Name))
	cw.P(".version\t= %s_FAMILY_VERSION,", cUpperLocal(f.Name))
	cw.P(".ops\t\t= %s_nl_ops,", cIdentLocal(f.Name))
	cw.P(".n_ops\t\t= ARRAY_SIZE(%s_nl_ops),", cIdentLocal(f.Name))
	if len(f.MulticastGroups) > 0 {
		cw.P(".mcgrps\t\t= %s_nl_mcgrps,", cIdentLocal(f.Name))
		cw.P(".n_mcgrps\t= ARRAY_SIZE(%s_nl_mcgrps),", cIdentLocal(f.Name))
	}
	if f.KernelFamily.SockPriv != "" {
		cw.P(".sock_priv_size\t= sizeof(struct %s),", f.KernelFamily.SockPriv)
		cw.P(".sock_priv_init\t= __%s_nl_sock_priv_init,", cIdentLocal(f.Name))
		cw.P(".sock_priv_destroy = __%s_nl_sock_priv_destroy,", cIdentLocal(f.Name))
	}
	cw.indent--
	cw.P("};")
}
