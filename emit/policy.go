package emit

import (
	"fmt"

	"github.com/m-lab/nlgen/ir"
)

// ScalarPolicy renders a scalar attribute's kernel-side validation
// clause, applying the precedence chain spec.md §4.3 and §8 require:
// flags-mask > full-range > range > min > max > sparse > default.
func ScalarPolicy(cIdent string, a *ir.ScalarAttr) string {
	c := a.Checks
	switch {
	case c.FlagsMask != "" || a.IsBitfield:
		mask := uint64(0)
		if a.Enum != nil {
			mask = a.Enum.Mask()
		}
		return fmt.Sprintf("NLA_POLICY_MASK(%s, 0x%x)", scalarNLAType(a), mask)
	case c.FullRange:
		return fmt.Sprintf("NLA_POLICY_FULL_RANGE(%s, &%s_range)", scalarNLAType(a), cIdent)
	case c.HasMin && c.HasMax:
		return fmt.Sprintf("NLA_POLICY_RANGE(%s, %d, %d)", scalarNLAType(a), c.Min, c.Max)
	case c.HasMin:
		return fmt.Sprintf("NLA_POLICY_MIN(%s, %d)", scalarNLAType(a), c.Min)
	case c.HasMax:
		return fmt.Sprintf("NLA_POLICY_MAX(%s, %d)", scalarNLAType(a), c.Max)
	case c.Sparse:
		return fmt.Sprintf("NLA_POLICY_VALIDATE_FN(%s, &%s_validate)", scalarNLAType(a), cIdent)
	default:
		return scalarNLAType(a)
	}
}

func scalarNLAType(a *ir.ScalarAttr) string {
	switch a.ScalarType {
	case "u8":
		return "NLA_U8"
	case "u16":
		return "NLA_U16"
	case "u32":
		return "NLA_U32"
	case "u64":
		return "NLA_U64"
	case "s8":
		return "NLA_S8"
	case "s16":
		return "NLA_S16"
	case "s32":
		return "NLA_S32"
	case "s64":
		return "NLA_S64"
	default:
		return "NLA_U32"
	}
}

// StringPolicy renders a string attribute's policy: NUL_STRING unless
// unterminated-ok, with an optional max-len or an exact EXACT_LEN
// override (spec.md §4.3 "String policy").
func StringPolicy(a *ir.StringAttr) string {
	c := a.Checks
	switch {
	case c.HasExactLen:
		return fmt.Sprintf("NLA_POLICY_EXACT_LEN(%d)", c.ExactLen)
	case c.UnterminatedOK && c.HasMaxLen:
		return fmt.Sprintf("NLA_POLICY_MAX_LEN(%d)", c.MaxLen)
	case c.UnterminatedOK:
		return "NLA_POLICY_MAX_LEN(0)"
	case c.HasMaxLen:
		return fmt.Sprintf("NLA_POLICY_MAX_LEN(%d)", c.MaxLen+1) // +1 for NUL
	default:
		return "NLA_POLICY_NUL_STRING"
	}
}

// BinaryPolicy renders a binary (or binary-scalar-array) attribute's
// policy, parameterized by exact-len / min-len / max-len (spec.md
// §4.3 "Binary policy: same family").
func BinaryPolicy(c ir.Checks) string {
	switch {
	case c.HasExactLen:
		return fmt.Sprintf("NLA_POLICY_EXACT_LEN(%d)", c.ExactLen)
	case c.HasMinLen && c.HasMaxLen:
		return fmt.Sprintf("NLA_POLICY_MIN_LEN(%d) /* max %d */", c.MinLen, c.MaxLen)
	case c.HasMinLen:
		return fmt.Sprintf("NLA_POLICY_MIN_LEN(%d)", c.MinLen)
	case c.HasMaxLen:
		return fmt.Sprintf("NLA_POLICY_MAX_LEN(%d)", c.MaxLen)
	default:
		return "NLA_POLICY_BINARY"
	}
}

// SubMessagePolicy renders the special policy entry a sub-message
// attribute requires: is_submsg carrying the sibling selector's
// attribute value (spec.md §4.3 "Sub-messages require a special
// policy entry").
func SubMessagePolicy(a *ir.SubMessageAttr) string {
	sel := "0"
	if a.Selector != nil && a.Selector.Sibling != nil {
		sel = a.Selector.Sibling.Base().EnumName
	}
	return fmt.Sprintf("{ .type = NLA_NESTED, .is_submsg = 1, .selector_type = %s }", sel)
}
