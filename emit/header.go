package emit

import (
	"os"
	"path/filepath"
	"strings"
)

// FindRootRelative walks upward from specPath's directory until it
// finds a MAINTAINERS file, and returns specPath relative to that
// directory (spec.md §6 "the source spec path (relative to the kernel
// root, discovered by walking upward until a MAINTAINERS file is
// found)"). If no MAINTAINERS file is found before reaching the
// filesystem root, specPath is returned unchanged.
func FindRootRelative(specPath string) string {
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return specPath
	}
	dir := filepath.Dir(abs)
	for {
		if _, err := os.Stat(filepath.Join(dir, "MAINTAINERS")); err == nil {
			if rel, err := filepath.Rel(dir, abs); err == nil {
				return rel
			}
			return specPath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return specPath
		}
		dir = parent
	}
}

// WriteBanner writes the shared header every emitted file begins with:
// a license line, a do-not-edit banner, the spec path, the generator
// mode, and the echoed CLI arguments (spec.md §6).
func WriteBanner(cw *CodeWriter, license, specRelPath, mode string, args []string) {
	cw.P("/* SPDX-License-Identifier: %s */", license)
	cw.P("/* Do not edit directly, auto-generated from: */")
	cw.P("/*\t%s */", specRelPath)
	cw.P("/* Generator mode: %s */", mode)
	if len(args) > 0 {
		cw.P("/* Invocation: %s */", strings.Join(args, " "))
	}
	cw.Nl()
}
