// Main package attrcsv is a diagnostic tool: it resolves a family spec
// and writes one CSV row per attribute across every attribute set,
// for spotting index gaps or policy mismatches without reading the
// generated C.
package main

import (
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/m-lab/go/rtx"

	"github.com/m-lab/nlgen/ir"
	"github.com/m-lab/nlgen/yamlspec"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// attrRow is one CSV row: the owning attribute set, the attribute's
// name and index, its Attr.Kind() string, and whether it is reachable
// from a request or a reply.
type attrRow struct {
	AttrSet string `csv:"attr_set"`
	Name    string `csv:"name"`
	Index   int    `csv:"index"`
	Kind    string `csv:"kind"`
	Request bool   `csv:"request"`
	Reply   bool   `csv:"reply"`
}

func rowsFor(f *ir.Family) []*attrRow {
	var rows []*attrRow
	for _, name := range f.AttrSetOrder() {
		set := f.AttrSets[name]
		for _, a := range set.Attrs {
			b := a.Base()
			rows = append(rows, &attrRow{
				AttrSet: set.Name,
				Name:    b.Name,
				Index:   b.Index,
				Kind:    a.Kind(),
				Request: b.Request,
				Reply:   b.Reply,
			})
		}
	}
	return rows
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <spec.yaml>", os.Args[0])
	}

	doc, err := yamlspec.Load(os.Args[1])
	rtx.Must(err, "could not load %s", os.Args[1])

	f, err := ir.BuildFamily(doc)
	rtx.Must(err, "could not build IR for %s", os.Args[1])

	rtx.Must(f.Resolve(), "could not resolve %s", os.Args[1])

	rtx.Must(gocsv.Marshal(rowsFor(f), os.Stdout), "could not write CSV")
}
