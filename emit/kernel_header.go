package emit

import (
	"fmt"

	"github.com/m-lab/nlgen/ir"
)

// EmitKernelHeader renders the kernel-side header: forward
// declarations of the nested-set request policies kernel_source.go
// defines, op prototypes, hook prototypes, the multicast group enum,
// and the family extern (spec.md §4.5 "Kernel header"). The global,
// per-op and split policy arrays get no declaration here.
func EmitKernelHeader(f *ir.Family, license, specRelPath string, args []string) []byte {
	cw := NewCodeWriter()
	WriteBanner(cw, license, specRelPath, "kernel-header", args)

	guard := cUpperLocal(f.Name) + "_GEN_H"
	cw.P("#ifndef %s", guard)
	cw.P("#define %s", guard)
	cw.Nl()
	cw.P("#include <net/netlink.h>")
	cw.P("#include <net/genetlink.h>")
	for _, h := range f.KernelFamily.Headers {
		cw.P("#include %s", h)
	}
	cw.Nl()

	for _, name := range f.NestedStructsOrder {
		st := f.NestedStructs[name]
		if !st.Request {
			continue
		}
		if st.Recursive {
			cw.P("extern const struct nla_policy %s_nl_policy[];", cIdentLocal(st.Set.Name))
		} else {
			cw.P("extern const struct nla_policy %s_nl_policy[];", cIdentLocal(st.Set.Name))
		}
	}
	cw.Nl()

	for _, op := range f.Operations {
		if op.Do != nil {
			cw.P("int %s_%s_doit(struct sk_buff *skb, struct genl_info *info);", cIdentLocal(f.Name), cIdentLocal(op.Name))
		}
		if op.Dump != nil {
			cw.P("int %s_%s_dumpit(struct sk_buff *skb, struct netlink_callback *cb);", cIdentLocal(f.Name), cIdentLocal(op.Name))
		}
		for _, h := range op.PreHooks {
			cw.P("int %s(const struct genl_split_ops *ops, struct sk_buff *skb, struct genl_info *info);", h)
		}
		for _, h := range op.PostHooks {
			cw.P("void %s(const struct genl_split_ops *ops, struct sk_buff *skb, struct genl_info *info);", h)
		}
	}
	cw.Nl()

	if len(f.MulticastGroups) > 0 {
		cw.BlockStart(fmt.Sprintf("enum %s_multicast_groups", cIdentLocal(f.Name)))
		for _, g := range f.MulticastGroups {
			cw.P("%s_NLGRP_%s,", cUpperLocal(f.Name), cUpperLocal(g))
		}
		cw.BlockEnd(";")
		cw.Nl()
	}

	cw.P("extern struct genl_family %s_nl_family;", cIdentLocal(f.Name))
	cw.Nl()
	cw.P("#endif /* %s */", guard)
	return cw.Bytes()
}
