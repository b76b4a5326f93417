// Package yamlspec decodes the raw YAML description of a netlink family
// into plain Go structs. It performs no cross-referencing or validation
// beyond what the YAML decoder itself does - that work belongs to the ir
// package, which turns a Doc into a resolved Family.
package yamlspec

// Doc is the root of a family specification file.
type Doc struct {
	Name        string       `yaml:"name"`
	Protocol    string       `yaml:"protocol"` // "genetlink", "genetlink-legacy", "netlink-raw"
	Version     int          `yaml:"version"`
	License     string       `yaml:"license"`
	Doc         string       `yaml:"doc"`
	Definitions []Definition `yaml:"definitions"`
	AttrSets    []AttrSet    `yaml:"attribute-sets"`
	SubMessages []SubMessage `yaml:"sub-messages"`
	Operations  Operations   `yaml:"operations"`
	MulticastGroups McastGroups `yaml:"mcast-groups"`
	KernelFamily KernelFamily `yaml:"kernel-family"`
	KernelPolicy string      `yaml:"kernel-policy"` // "global" | "per-op" | "split", default "split"
}

// Definition is one entry of the top-level `definitions:` list: an enum,
// a flags set, a plain constant, or a C struct used by binary-struct
// attributes.
type Definition struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"` // "enum" | "flags" | "const" | "struct" | "pad"
	Doc        string      `yaml:"doc"`
	Header     string      `yaml:"header"`
	EnumModel  string      `yaml:"enum-model"` // reserved for future use
	ValuePfx   string      `yaml:"name-prefix"`
	EnumCntName string     `yaml:"enum-cnt-name"`
	RenderMax  bool        `yaml:"render-max"`
	Entries    []EnumEntryRaw `yaml:"entries"`
	Members    []StructMember `yaml:"members"` // for type: struct
	Value      interface{} `yaml:"value"`      // for type: const
}

// EnumEntryRaw is one entry of an enum/flags definition.
type EnumEntryRaw struct {
	Name  string      `yaml:"name"`
	Value interface{} `yaml:"value"`
	Doc   string      `yaml:"doc"`
}

// StructMember is one field of a `type: struct` definition.
type StructMember struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Len  int    `yaml:"len"`
}

// AttrSet is one entry of the top-level `attribute-sets:` list.
type AttrSet struct {
	Name       string     `yaml:"name"`
	SubsetOf   string     `yaml:"subset-of"`
	NamePrefix string     `yaml:"name-prefix"`
	EnumName   string     `yaml:"enum-name"`
	Attributes []Attr     `yaml:"attributes"`
}

// Attr is one entry of an attribute-set's `attributes:` list.
type Attr struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	SubType string                 `yaml:"sub-type"`
	Value   *int                   `yaml:"value"`
	Doc     string                 `yaml:"doc"`

	ByteOrder string `yaml:"byte-order"`
	Enum      string `yaml:"enum"`
	EnumAsFlags bool `yaml:"enum-as-flags"`

	NestedAttributes string `yaml:"nested-attributes"`
	SubMessage       string `yaml:"sub-message"`
	Selector         string `yaml:"selector"`
	SelectorExternal bool   `yaml:"selector-is-external"`
	TypeValue        string `yaml:"type-value"`

	Struct string `yaml:"struct"`

	MultiAttr bool `yaml:"multi-attr"`

	Checks map[string]interface{} `yaml:"checks"`
}

// SubMessage is one entry of the top-level `sub-messages:` list.
type SubMessage struct {
	Name    string              `yaml:"name"`
	Formats []SubMessageFormat `yaml:"formats"`
}

// SubMessageFormat is one variant of a sub-message.
type SubMessageFormat struct {
	Value           string `yaml:"value"`
	FixedHeader     string `yaml:"fixed-header"`
	AttributeSet    string `yaml:"attribute-set"`
}

// Operations is the top-level `operations:` block.
type Operations struct {
	EnumModel  string `yaml:"enum-model"` // "unified" | "directional"
	NamePrefix string `yaml:"name-prefix"`
	AsyncPrefix string `yaml:"async-prefix"`
	FixedHeader string `yaml:"fixed-header"`
	List       []Operation `yaml:"list"`
}

// Operation is one entry of `operations.list`.
type Operation struct {
	Name        string    `yaml:"name"`
	Doc         string    `yaml:"doc"`
	AttributeSet string   `yaml:"attribute-set"`
	Value       *int      `yaml:"value"`
	FixedHeader string    `yaml:"fixed-header"`
	Do          *OpMode   `yaml:"do"`
	Dump        *OpMode   `yaml:"dump"`
	Notify      string    `yaml:"notify"`
	Event       *OpMode   `yaml:"event"`
	Mcgrp       string    `yaml:"mcgrp"`
}

// OpMode is the `do:`/`dump:`/`event:` sub-block of an operation.
type OpMode struct {
	Request *AttrList `yaml:"request"`
	Reply   *AttrList `yaml:"reply"`

	// event: blocks list attributes directly, no request/reply split.
	Attributes []string `yaml:"attributes"`

	Pre  string `yaml:"pre"`
	Post string `yaml:"post"`
}

// AttrList names the attributes of a request or reply, and optionally
// overrides the fixed header for this direction only.
type AttrList struct {
	Attributes  []string `yaml:"attributes"`
	FixedHeader string   `yaml:"fixed-header"`
	Value       *int     `yaml:"value"`
}

// McastGroups is the top-level `mcast-groups:` block.
type McastGroups struct {
	List []McastGroup `yaml:"list"`
}

// McastGroup is one multicast group.
type McastGroup struct {
	Name string `yaml:"name"`
}

// KernelFamily is the top-level `kernel-family:` block.
type KernelFamily struct {
	Headers     []string `yaml:"headers"`
	SockPriv    string   `yaml:"sock-priv"` // name of socket-private struct, enables CFI trampolines
}
