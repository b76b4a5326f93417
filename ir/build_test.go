package ir

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/m-lab/nlgen/yamlspec"
)

func loadFamily(t *testing.T, path string) *Family {
	t.Helper()
	doc, err := yamlspec.Load(path)
	if err != nil {
		t.Fatalf("yamlspec.Load(%s): %v", path, err)
	}
	f, err := BuildFamily(doc)
	if err != nil {
		t.Fatalf("BuildFamily(%s): %v", path, err)
	}
	return f
}

func TestBuildFamilyEthtoolSplit(t *testing.T) {
	f := loadFamily(t, "../testdata/ethtool_split.yaml")
	if f.Name != "ethtool" {
		t.Fatalf("Name = %q, want ethtool", f.Name)
	}
	if f.Flavor != "generic" {
		t.Fatalf("Flavor = %q, want generic", f.Flavor)
	}
	op, ok := f.OperationByName("strset-get")
	if !ok {
		t.Fatal("strset-get not found")
	}
	if op.Do == nil || op.Dump == nil {
		t.Fatal("expected both do and dump specs")
	}
	if !op.DualPolicy {
		t.Error("expected DualPolicy true for strset-get")
	}
}

func TestBuildFamilyClassicFlavor(t *testing.T) {
	f := loadFamily(t, "../testdata/classic_do.yaml")
	if f.Flavor != "classic" {
		t.Fatalf("Flavor = %q, want classic", f.Flavor)
	}
}

func TestBuildFamilySparseEnum(t *testing.T) {
	f := loadFamily(t, "../testdata/sparse_enum.yaml")
	es, ok := f.EnumByName("colors")
	if !ok {
		t.Fatal("colors enum not found")
	}
	if _, _, ok := es.Range(); ok {
		t.Fatal("expected colors to be reported sparse (non-contiguous)")
	}
	set := f.AttrSets["pixel"]
	attr, ok := set.ByName("color")
	if !ok {
		t.Fatal("color attribute not found")
	}
	scalar, ok := attr.(*ScalarAttr)
	if !ok {
		t.Fatalf("color attribute is %T, want *ScalarAttr", attr)
	}
	if !scalar.Checks.Sparse {
		t.Error("expected sparse check to be set on color attribute")
	}
}

func TestBuildFamilyIndexedArrayExactLen(t *testing.T) {
	f := loadFamily(t, "../testdata/indexed_array.yaml")
	set := f.AttrSets["macs"]
	attr, ok := set.ByName("name")
	if !ok {
		t.Fatal("name attribute not found")
	}
	an, ok := attr.(*ArrayNestAttr)
	if !ok {
		t.Fatalf("name attribute is %T, want *ArrayNestAttr", attr)
	}
	if an.ElemKind != ArrayElemBinary {
		t.Errorf("ElemKind = %v, want binary", an.ElemKind)
	}
	if !an.Checks.HasExactLen || an.Checks.ExactLen != 6 {
		t.Errorf("ExactLen = %v/%v, want true/6", an.Checks.HasExactLen, an.Checks.ExactLen)
	}
}

func TestBuildFamilySubMessageSynthesis(t *testing.T) {
	f := loadFamily(t, "../testdata/submessage.yaml")
	synth, ok := f.AttrSets["submsg-variant"]
	if !ok {
		t.Fatal("synthesized attribute set submsg-variant not found")
	}
	if len(synth.Attrs) != 2 {
		t.Fatalf("len(synth.Attrs) = %d, want 2", len(synth.Attrs))
	}
	foo, ok := synth.ByName("foo")
	if !ok {
		t.Fatal("foo variant attribute not found")
	}
	if _, ok := foo.(*NestAttr); !ok {
		t.Errorf("foo variant is %T, want *NestAttr", foo)
	}
	bar, ok := synth.ByName("bar")
	if !ok {
		t.Fatal("bar variant attribute not found")
	}
	if _, ok := bar.(*FlagAttr); !ok {
		t.Errorf("bar variant is %T, want *FlagAttr", bar)
	}
}

func TestBuildFamilyDeterministic(t *testing.T) {
	a := loadFamily(t, "../testdata/ethtool_split.yaml")
	b := loadFamily(t, "../testdata/ethtool_split.yaml")
	if err := a.Resolve(); err != nil {
		t.Fatalf("Resolve(a): %v", err)
	}
	if err := b.Resolve(); err != nil {
		t.Fatalf("Resolve(b): %v", err)
	}
	if diff := deep.Equal(a, b); diff != nil {
		t.Errorf("two independent builds of the same spec diverged: %v", diff)
	}
}
