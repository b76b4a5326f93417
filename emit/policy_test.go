package emit

import (
	"strings"
	"testing"

	"github.com/m-lab/nlgen/ir"
)

func scalarWith(checks ir.Checks) *ir.ScalarAttr {
	return &ir.ScalarAttr{
		AttrBase:  ir.AttrBase{Name: "val", CName: "val", Checks: checks},
		ScalarType: "u32",
	}
}

func TestScalarPolicyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		c    ir.Checks
		want string
	}{
		{"full-range", ir.Checks{FullRange: true, HasMin: true, Min: 1, HasMax: true, Max: 10}, "NLA_POLICY_FULL_RANGE"},
		{"range", ir.Checks{HasMin: true, Min: 1, HasMax: true, Max: 10}, "NLA_POLICY_RANGE(NLA_U32, 1, 10)"},
		{"min-only", ir.Checks{HasMin: true, Min: 5}, "NLA_POLICY_MIN(NLA_U32, 5)"},
		{"max-only", ir.Checks{HasMax: true, Max: 5}, "NLA_POLICY_MAX(NLA_U32, 5)"},
		{"sparse", ir.Checks{Sparse: true}, "NLA_POLICY_VALIDATE_FN"},
		{"default", ir.Checks{}, "NLA_U32"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScalarPolicy("val", scalarWith(tc.c))
			if !strings.Contains(got, tc.want) {
				t.Errorf("ScalarPolicy(%+v) = %q, want substring %q", tc.c, got, tc.want)
			}
		})
	}
}

func TestScalarPolicyFlagsMaskWinsOverRange(t *testing.T) {
	c := ir.Checks{FlagsMask: "some-enum", HasMin: true, Min: 1, HasMax: true, Max: 10}
	got := ScalarPolicy("val", scalarWith(c))
	if !strings.Contains(got, "NLA_POLICY_MASK") {
		t.Errorf("flags-mask should take precedence over range, got %q", got)
	}
}

func TestStringPolicyExactLenWinsOverUnterminated(t *testing.T) {
	a := &ir.StringAttr{AttrBase: ir.AttrBase{Checks: ir.Checks{
		HasExactLen: true, ExactLen: 8, UnterminatedOK: true,
	}}}
	got := StringPolicy(a)
	if got != "NLA_POLICY_EXACT_LEN(8)" {
		t.Errorf("StringPolicy() = %q, want NLA_POLICY_EXACT_LEN(8)", got)
	}
}

func TestStringPolicyDefaultIsNulString(t *testing.T) {
	a := &ir.StringAttr{}
	if got := StringPolicy(a); got != "NLA_POLICY_NUL_STRING" {
		t.Errorf("StringPolicy() = %q, want NLA_POLICY_NUL_STRING", got)
	}
}

func TestBinaryPolicyExactLen(t *testing.T) {
	c := ir.Checks{HasExactLen: true, ExactLen: 16}
	if got := BinaryPolicy(c); got != "NLA_POLICY_EXACT_LEN(16)" {
		t.Errorf("BinaryPolicy() = %q, want NLA_POLICY_EXACT_LEN(16)", got)
	}
}
