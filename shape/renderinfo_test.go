package shape

import (
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

func TestBuildClassicDoHasNlmsgFlags(t *testing.T) {
	f := resolvedFamily(t, "../testdata/classic_do.yaml")
	op, _ := f.OperationByName("get")
	ri, err := Build(f, op, "do")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !ri.HasNlmsgFlags {
		t.Error("expected classic do request to carry nlmsg flags")
	}
	if ri.Request == nil || len(ri.Request.Members) != 1 {
		t.Fatalf("Request = %+v, want one member", ri.Request)
	}
}

func TestBuildGenericDoNoNlmsgFlags(t *testing.T) {
	f := resolvedFamily(t, "../testdata/ethtool_split.yaml")
	op, _ := f.OperationByName("strset-get")
	ri, err := Build(f, op, "do")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ri.HasNlmsgFlags {
		t.Error("expected generic-flavor do request not to carry nlmsg flags")
	}
	if !TypeConsistent(op) {
		t.Error("expected strset-get do/dump replies to be type-consistent")
	}
}

func TestBuildDumpMode(t *testing.T) {
	f := resolvedFamily(t, "../testdata/ethtool_split.yaml")
	op, _ := f.OperationByName("strset-get")
	ri, err := Build(f, op, "dump")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ri == nil || ri.Reply == nil {
		t.Fatal("expected a dump reply struct")
	}
}
