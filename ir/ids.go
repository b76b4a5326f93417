package ir

import (
	"strings"
	"unicode"
)

// cKeywords mirrors the original generator's reserved-word table: C
// keywords plus a handful of identifiers the generated headers already
// use for their own macros, any of which would collide with a
// YAML-derived attribute or operation name.
var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"type": true, "flags": true, "class": true, "new": true, "delete": true,
}

// cIdent turns a YAML name (hyphen-separated, e.g. "strset-get") into a
// stable C identifier: hyphens become underscores, a reserved word or a
// name starting with a digit gets a single leading underscore. The
// transform is applied once at build time and never revisited, so two
// names that only differ by case or separator style still collide
// exactly as they would in the emitted C - that mirrors the original
// behavior rather than silently disambiguating them.
func cIdent(name string) string {
	id := strings.ReplaceAll(name, "-", "_")
	if id == "" {
		return id
	}
	if r := rune(id[0]); unicode.IsDigit(r) {
		id = "_" + id
	}
	if cKeywords[id] {
		id = "_" + id
	}
	return id
}

// cUpper renders name as an upper-snake-case C macro/enum fragment.
func cUpper(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// CIdentExported exposes cIdent to other packages (emit's print_*
// functions need the same hyphen/keyword handling the IR builder
// used when it derived each CName).
func CIdentExported(name string) string { return cIdent(name) }

// CUpperExported exposes cUpper to other packages.
func CUpperExported(name string) string { return cUpper(name) }
