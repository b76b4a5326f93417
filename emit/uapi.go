package emit

import (
	"fmt"

	"github.com/m-lab/nlgen/ir"
)

// EmitUAPI renders the UAPI header: family-name/version defines, enum
// blocks per definitions entry, attribute-set enums, operation enums,
// and multicast group defines (spec.md §4.5 "UAPI").
func EmitUAPI(f *ir.Family, license, specRelPath string, args []string) []byte {
	cw := NewCodeWriter()
	WriteBanner(cw, license, specRelPath, "uapi", args)

	guard := cUpperLocal(f.Name) + "_H"
	cw.P("#ifndef %s", guard)
	cw.P("#define %s", guard)
	cw.Nl()
	cw.P("#define %s_FAMILY_NAME \"%s\"", cUpperLocal(f.Name), f.Name)
	cw.P("#define %s_FAMILY_VERSION %d", cUpperLocal(f.Name), f.Version)
	cw.Nl()

	for _, name := range f.ConstOrder() {
		if es, ok := f.Consts[name].(*ir.EnumSet); ok {
			writeEnumSet(cw, es)
		}
	}

	for _, name := range f.AttrSetOrder() {
		set := f.AttrSets[name]
		if set.SubsetOf != nil {
			continue // subsets share their parent's enum, not re-emitted
		}
		writeAttrSetEnum(cw, set)
	}

	writeOpEnum(cw, f)

	if len(f.MulticastGroups) > 0 {
		cw.Nl()
		for _, g := range f.MulticastGroups {
			cw.P("#define %s_MCGRP_%s \"%s\"", cUpperLocal(f.Name), cUpperLocal(g), g)
		}
	}

	cw.Nl()
	cw.P("#endif /* %s */", guard)
	return cw.Bytes()
}

func writeEnumSet(cw *CodeWriter, es *ir.EnumSet) {
	if es.Header != "" {
		return // declared elsewhere
	}
	cw.Nl()
	if es.Doc != "" {
		cw.P("/* %s */", es.Doc)
	}
	cw.BlockStart(fmt.Sprintf("enum %s", cIdentLocal(es.Name)))
	for _, e := range es.Entries {
		if e.ValueChange {
			cw.P("%s = %d,", e.CName, e.Value)
		} else {
			cw.P("%s,", e.CName)
		}
	}
	if es.RenderMax {
		last := ""
		if len(es.Entries) > 0 {
			last = es.Entries[len(es.Entries)-1].CName
		}
		cw.Nl()
		if es.CntName != "" {
			cw.P("__%s,", cUpperLocal(es.CntName))
			cw.P("%s = __%s - 1", cUpperLocal(es.CntName), cUpperLocal(es.CntName))
		} else if last != "" {
			cw.P("__%s_MAX,", cIdentLocal(es.Name))
			cw.P("%s_MAX = __%s_MAX - 1", cUpperLocal(es.Name), cIdentLocal(es.Name))
		}
	}
	cw.BlockEnd(";")
}

func writeAttrSetEnum(cw *CodeWriter, set *ir.AttrSet) {
	cw.Nl()
	cw.BlockStart(fmt.Sprintf("enum%s", enumTag(set)))
	cw.P("%s_UNSPEC,", cUpperLocal(set.Name))
	for _, a := range set.Attrs {
		cw.P("%s,", a.Base().EnumName)
	}
	cw.Nl()
	cw.P("__%s_MAX,", cUpperLocal(set.Name))
	cw.P("%s_MAX = (__%s_MAX - 1)", cUpperLocal(set.Name), cUpperLocal(set.Name))
	cw.BlockEnd(";")
}

func enumTag(set *ir.AttrSet) string {
	if set.EnumName != "" {
		return " " + set.EnumName
	}
	return ""
}

func writeOpEnum(cw *CodeWriter, f *ir.Family) {
	cw.Nl()
	if f.MessageIDModel == "directional" {
		cw.BlockStart(fmt.Sprintf("enum %s_REQUEST", cUpperLocal(f.Name)))
		for _, op := range f.Operations {
			cw.P("%s%s = %d,", op.NamePrefix, cUpperLocal(op.Name), op.Value)
		}
		cw.BlockEnd(";")
		cw.Nl()
		cw.BlockStart(fmt.Sprintf("enum %s_REPLY", cUpperLocal(f.Name)))
		for _, op := range f.Operations {
			cw.P("%s%s = %d,", op.NamePrefix, cUpperLocal(op.Name), op.Value)
		}
		cw.BlockEnd(";")
		return
	}
	cw.BlockStart(fmt.Sprintf("enum %s_CMD", cUpperLocal(f.Name)))
	for _, op := range f.Operations {
		cw.P("%s%s,", op.NamePrefix, cUpperLocal(op.Name))
	}
	cw.Nl()
	cw.P("__%s_CMD_MAX,", cUpperLocal(f.Name))
	cw.P("%s_CMD_MAX = (__%s_CMD_MAX - 1)", cUpperLocal(f.Name), cUpperLocal(f.Name))
	cw.BlockEnd(";")
}

func cUpperLocal(s string) string { return ir.CUpperExported(s) }
func cIdentLocal(s string) string { return ir.CIdentExported(s) }
