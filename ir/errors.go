// Package ir builds and resolves the in-memory schema for a netlink
// generic family: typed attribute sets, operations, enums and
// sub-messages, derived from the raw yamlspec.Doc tree. Construction
// (BuildFamily) populates only YAML-derived fields; Resolve derives
// everything else in a fixed pass order. Reads between the two phases
// are a build-time contract violation, not a runtime possibility - the
// resolver passes are the only code that reaches into as-yet-unset
// fields, and they run in the order documented on Family.Resolve.
package ir

import "errors"

var (
	ErrUnknownAttrType      = errors.New("ir: unknown attribute type")
	ErrUnknownEnum          = errors.New("ir: unknown enum reference")
	ErrMinGreaterThanMax    = errors.New("ir: min > max")
	ErrDuplicateIndex       = errors.New("ir: duplicate attribute index in set")
	ErrSubsetChecksDiffer   = errors.New("ir: subset attribute checks differ from parent")
	ErrRootAndNested        = errors.New("ir: attribute set used as both root and nested")
	ErrUnresolvedAttrSet    = errors.New("ir: reference to undefined attribute set")
	ErrUnresolvedSubMessage = errors.New("ir: reference to undefined sub-message")
	ErrUnresolvedOp         = errors.New("ir: reference to undefined operation")
	ErrToposortStuck        = errors.New("ir: topological sort made no progress")

	ErrSelectorNotThreadable           = errors.New("ir: external sub-message selector cannot be threaded through nesting")
	ErrSelectorUnresolved              = errors.New("ir: sub-message selector names no sibling attribute")
	ErrFixedHeaderOverrideUnsupported  = errors.New("ir: per-op fixed header override is only supported on the classic wire flavor")
	ErrGlobalPolicyMixedAttrSets       = errors.New("ir: kernel-policy: global requires every operation to share one attribute set")
	ErrLicenseMismatch                 = errors.New("ir: spec license does not match project license")
)
