package ir

import "testing"

func resolvedFamily(t *testing.T, path string) *Family {
	t.Helper()
	f := loadFamily(t, path)
	if err := f.Resolve(); err != nil {
		t.Fatalf("Resolve(%s): %v", path, err)
	}
	return f
}

func TestResolveEthtoolSplitReachability(t *testing.T) {
	f := resolvedFamily(t, "../testdata/ethtool_split.yaml")

	headerSet := f.AttrSets["header"]
	if !headerSet.IsNested {
		t.Fatal("expected attribute-set header to be discovered as pure-nested")
	}
	if headerSet.IsRoot {
		t.Fatal("attribute-set header must not also be root")
	}
	st := f.NestedStructs["header"]
	if !st.Request || !st.Reply {
		t.Errorf("header struct request/reply = %v/%v, want true/true", st.Request, st.Reply)
	}

	ssSet := f.AttrSets["strset-string-sets"]
	ssStruct := f.NestedStructs[ssSet.Name]
	if ssStruct.Reply != true || ssStruct.Request != false {
		t.Errorf("strset-string-sets reply/request = %v/%v, want true/false", ssStruct.Reply, ssStruct.Request)
	}
	if !ssStruct.InMultiVal {
		t.Error("expected strset-string-sets to be marked in_multi_val (reached via multi-attr string-sets)")
	}
}

func TestResolveDevlinkRecursive(t *testing.T) {
	f := resolvedFamily(t, "../testdata/devlink_recursive.yaml")
	st := f.NestedStructs["dpipe-field"]
	if st == nil {
		t.Fatal("dpipe-field struct not discovered")
	}
	if !st.Recursive {
		t.Error("expected dpipe-field to be marked recursive (self-nesting)")
	}
	if !st.Reply || !st.InMultiVal {
		t.Errorf("reply/in_multi_val = %v/%v, want true/true", st.Reply, st.InMultiVal)
	}
}

func TestResolveSubMessageSelector(t *testing.T) {
	f := resolvedFamily(t, "../testdata/submessage.yaml")
	msg := f.AttrSets["msg"]
	payload, ok := msg.ByName("payload")
	if !ok {
		t.Fatal("payload attribute not found")
	}
	sma, ok := payload.(*SubMessageAttr)
	if !ok {
		t.Fatalf("payload is %T, want *SubMessageAttr", payload)
	}
	if sma.Selector == nil || sma.Selector.Sibling == nil {
		t.Fatal("expected selector to resolve to a sibling attribute")
	}
	if sma.Selector.Sibling.Base().Name != "sel" {
		t.Errorf("selector sibling = %q, want sel", sma.Selector.Sibling.Base().Name)
	}
	if !sma.Selector.Sibling.Base().IsSelector {
		t.Error("expected sel attribute to be marked IsSelector")
	}
}

func TestResolveGlobalPolicyUnionOfRequestAttrs(t *testing.T) {
	f := loadFamily(t, "../testdata/sparse_enum.yaml")
	f.KernelPolicy = "global"
	if err := f.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if f.GlobalPolicySet == nil {
		t.Fatal("expected GlobalPolicySet to be set")
	}
	want := []string{"color"}
	if len(f.GlobalPolicyOrder) != len(want) || f.GlobalPolicyOrder[0] != want[0] {
		t.Errorf("GlobalPolicyOrder = %v, want %v", f.GlobalPolicyOrder, want)
	}
}

func TestResolveClassicFlavorRoot(t *testing.T) {
	f := resolvedFamily(t, "../testdata/classic_do.yaml")
	op, ok := f.OperationByName("get")
	if !ok {
		t.Fatal("operation get not found")
	}
	if op.AttrSet == nil || !op.AttrSet.IsRoot {
		t.Fatal("expected req attribute-set to be marked root")
	}
	attr, ok := op.AttrSet.ByName("cookie")
	if !ok {
		t.Fatal("cookie attribute not found")
	}
	if !attr.Base().Request || !attr.Base().Reply {
		t.Errorf("cookie request/reply = %v/%v, want true/true", attr.Base().Request, attr.Base().Reply)
	}
}
