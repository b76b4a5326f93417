package emit

import (
	"strings"
	"testing"

	"github.com/m-lab/nlgen/ir"
	"github.com/m-lab/nlgen/yamlspec"
)

func resolvedFamily(t *testing.T, path string) *ir.Family {
	t.Helper()
	doc, err := yamlspec.Load(path)
	if err != nil {
		t.Fatalf("yamlspec.Load: %v", err)
	}
	f, err := ir.BuildFamily(doc)
	if err != nil {
		t.Fatalf("BuildFamily: %v", err)
	}
	if err := f.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return f
}

func TestEmitUAPIEthtoolSplit(t *testing.T) {
	f := resolvedFamily(t, "../testdata/ethtool_split.yaml")
	out := EmitUAPI(f, "GPL-2.0", "ethtool_split.yaml", nil)
	s := string(out)
	if !strings.Contains(s, "ETHTOOL_FAMILY_NAME") {
		t.Errorf("missing family name macro in uapi output:\n%s", s)
	}
	if !strings.Contains(s, "#ifndef") || !strings.Contains(s, "#endif") {
		t.Error("missing include guard")
	}
}

func TestEmitKernelHeaderAndSourceClassic(t *testing.T) {
	f := resolvedFamily(t, "../testdata/classic_do.yaml")
	hdr := string(EmitKernelHeader(f, "GPL-2.0", "classic_do.yaml", nil))
	if !strings.Contains(hdr, "genl_family") {
		t.Errorf("kernel header missing family extern:\n%s", hdr)
	}
	src := string(EmitKernelSource(f, "GPL-2.0", "classic_do.yaml", nil))
	if !strings.Contains(src, "nl_family") {
		t.Errorf("kernel source missing family descriptor:\n%s", src)
	}
}

func TestEmitUserHeaderAndSourceEthtoolSplit(t *testing.T) {
	f := resolvedFamily(t, "../testdata/ethtool_split.yaml")
	hdr, err := EmitUserHeader(f, "GPL-2.0", "ethtool_split.yaml", nil, nil)
	if err != nil {
		t.Fatalf("EmitUserHeader: %v", err)
	}
	if !strings.Contains(string(hdr), "ynl.h") {
		t.Errorf("user header missing ynl.h include:\n%s", hdr)
	}
	src, err := EmitUserSource(f, "GPL-2.0", "ethtool_split.yaml", nil)
	if err != nil {
		t.Fatalf("EmitUserSource: %v", err)
	}
	if !strings.Contains(string(src), "op_str") {
		t.Errorf("user source missing op_str table:\n%s", src)
	}
}

func TestEmitUserSourceDevlinkRecursive(t *testing.T) {
	f := resolvedFamily(t, "../testdata/devlink_recursive.yaml")
	src, err := EmitUserSource(f, "GPL-2.0", "devlink_recursive.yaml", nil)
	if err != nil {
		t.Fatalf("EmitUserSource: %v", err)
	}
	if !strings.Contains(string(src), "put/parse/free routines for nested attribute sets") {
		t.Errorf("expected nested put/parse/free routine section:\n%s", src)
	}
	if !strings.Contains(string(src), "_free(struct") {
		t.Errorf("expected a nested free routine definition:\n%s", src)
	}
}
