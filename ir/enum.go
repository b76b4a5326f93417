package ir

import "fmt"

// EnumEntry is one member of an EnumSet.
type EnumEntry struct {
	Name        string
	CName       string
	Value       int
	ValueChange bool // true if Value != predecessor+1, or the set is flags
	Doc         string
}

// EnumSet is a named, ordered collection of EnumEntry, declared under
// the family's top-level `definitions:` list with type "enum" or
// "flags".
type EnumSet struct {
	Name        string
	Kind        string // "enum" | "flags"
	ValuePrefix string
	CntName     string
	Header      string // non-empty: entries are declared elsewhere, don't re-emit
	RenderMax   bool
	Doc         string
	Entries     []*EnumEntry
}

func (e *EnumSet) isConst() {}

// Range reports the enum's contiguous [low, high] value range. ok is
// false if the values are not contiguous ("sparse" per spec.md §4.1/§4.3).
func (e *EnumSet) Range() (low, high int, ok bool) {
	if len(e.Entries) == 0 {
		return 0, 0, true
	}
	low = e.Entries[0].Value
	high = e.Entries[0].Value
	want := low
	for _, ent := range e.Entries {
		if ent.Value != want {
			return 0, 0, false
		}
		if ent.Value > high {
			high = ent.Value
		}
		want = ent.Value + 1
	}
	return low, high, true
}

// Mask computes the OR of 1<<entry.Value for every entry, the bitmask
// used by MASK(...) policy clauses and by NLA_POLICY_BITFIELD32. Entry
// values for a flags set are bit indices, not pre-shifted masks.
func (e *EnumSet) Mask() uint64 {
	var m uint64
	for _, ent := range e.Entries {
		if ent.Value >= 0 && ent.Value < 64 {
			m |= 1 << uint(ent.Value)
		}
	}
	return m
}

// EntryByName looks up an entry, used when a check or selector names a
// specific enum value by its YAML name rather than its integer value.
func (e *EnumSet) EntryByName(name string) (*EnumEntry, bool) {
	for _, ent := range e.Entries {
		if ent.Name == name {
			return ent, true
		}
	}
	return nil, false
}

func buildEnumSet(name, kind, valuePrefix, cntName, header string, renderMax bool, doc string, rawEntries []rawEnumEntry) (*EnumSet, error) {
	es := &EnumSet{
		Name: name, Kind: kind, ValuePrefix: valuePrefix,
		CntName: cntName, Header: header, RenderMax: renderMax, Doc: doc,
	}
	next := 0
	for i, re := range rawEntries {
		val := next
		explicit := false
		if re.hasValue {
			val = re.value
			explicit = true
		}
		changed := explicit && val != next
		if kind == "flags" {
			changed = true
		}
		if i == 0 && !explicit && kind != "flags" {
			changed = false
		}
		es.Entries = append(es.Entries, &EnumEntry{
			Name:        re.name,
			CName:       cUpper(valuePrefix + re.name),
			Value:       val,
			ValueChange: changed,
			Doc:         re.doc,
		})
		next = val + 1
	}
	if _, _, ok := es.Range(); !ok && kind == "enum" {
		// sparse is a legitimate, expected state (spec.md §8.4) - no error,
		// just nothing further to precompute here.
		_ = fmt.Sprintf
	}
	return es, nil
}

// rawEnumEntry is the intermediate shape build.go hands to
// buildEnumSet, decoupling this file from the yamlspec package's
// `interface{}` value field.
type rawEnumEntry struct {
	name     string
	hasValue bool
	value    int
	doc      string
}
