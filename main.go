package main

// nlgen renders C artifacts (UAPI headers, kernel policy/op tables,
// user-side serializers) from a netlink generic family described in
// YAML. One run renders exactly one artifact; building a full family's
// header/source quintet means invoking the binary five times, same as
// the generator it imitates.

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/rtx"

	"github.com/m-lab/nlgen/emit"
	"github.com/m-lab/nlgen/ir"
	"github.com/m-lab/nlgen/metrics"
	"github.com/m-lab/nlgen/yamlspec"
)

// projectLicense is the dual license every input spec must declare
// (spec.md §6 "license mismatch"); it matches the kernel UAPI
// convention the example specs under testdata/ already use.
const projectLicense = "((GPL-2.0 WITH Linux-syscall-note) OR BSD-2-Clause)"

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	mode       = flag.String("mode", "", "Generation mode: user, kernel, or uapi (required)")
	specPath   = flag.String("spec", "", "Path to the YAML family spec (required)")
	header     = flag.Bool("header", false, "Render the header artifact for the selected mode")
	source     = flag.Bool("source", false, "Render the source artifact for the selected mode")
	outPath    = flag.String("o", "", "Output file path; stdout if empty")
	cmpOut     = flag.Bool("cmp-out", false, "Atomically compare-and-skip write: leave an unchanged file untouched")
	excludeOps excludeOpFlag
	userHdrs   stringListFlag
)

// stringListFlag collects a repeatable string-valued flag into an
// ordered slice (used for --user-header).
type stringListFlag []string

func (s *stringListFlag) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// excludeOpFlag collects repeatable --exclude-op regexes; each
// matching op name is dropped from the IR before resolution runs.
type excludeOpFlag []*regexp.Regexp

func (e *excludeOpFlag) String() string {
	if e == nil {
		return ""
	}
	parts := make([]string, len(*e))
	for i, re := range *e {
		parts[i] = re.String()
	}
	return strings.Join(parts, ",")
}

func (e *excludeOpFlag) Set(v string) error {
	re, err := regexp.Compile(v)
	if err != nil {
		return fmt.Errorf("--exclude-op %q: %w", v, err)
	}
	*e = append(*e, re)
	return nil
}

func init() {
	flag.Var(&excludeOps, "exclude-op", "Regex matched against op names; repeatable; matches are dropped before resolution")
	flag.Var(&userHdrs, "user-header", "Extra #include path for user mode; repeatable")
}

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	rtx.Must(validateFlags(), "invalid flags")

	start := time.Now()
	out, err := run()
	metrics.GenerationTimeHistogram.WithLabelValues(*mode).Observe(time.Since(start).Seconds())
	if err != nil {
		log.Fatalf("nlgen: %v", err)
	}

	unchanged := false
	if *cmpOut && *outPath != "" {
		if old, err := os.ReadFile(*outPath); err == nil && bytes.Equal(old, out) {
			unchanged = true
		}
	}
	rtx.Must(emit.WriteAtomic(*outPath, out, *cmpOut), "failed to write output")
	if unchanged {
		metrics.SkippedUnchanged.Inc()
	} else {
		metrics.ArtifactsWritten.WithLabelValues(*mode).Inc()
	}
}

func validateFlags() error {
	if *mode != "user" && *mode != "kernel" && *mode != "uapi" {
		return fmt.Errorf("--mode must be one of user, kernel, uapi")
	}
	if *specPath == "" {
		return fmt.Errorf("--spec is required")
	}
	if *header == *source {
		return fmt.Errorf("exactly one of --header or --source is required")
	}
	return nil
}

func run() ([]byte, error) {
	doc, err := yamlspec.Load(*specPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", *specPath, err)
	}
	if doc.License != projectLicense {
		metrics.ResolveErrors.WithLabelValues("license-mismatch").Inc()
		return nil, fmt.Errorf("%w: %s declares %q, want %q", ir.ErrLicenseMismatch, *specPath, doc.License, projectLicense)
	}

	f, err := ir.BuildFamily(doc)
	if err != nil {
		metrics.ResolveErrors.WithLabelValues("build").Inc()
		return nil, fmt.Errorf("building IR: %w", err)
	}

	if len(excludeOps) > 0 {
		f.Operations = filterOps(f.Operations, excludeOps)
	}

	if err := f.Resolve(); err != nil {
		metrics.ResolveErrors.WithLabelValues("resolve").Inc()
		return nil, fmt.Errorf("resolving IR: %w", err)
	}

	metrics.OperationsCount.WithLabelValues(f.Name).Set(float64(len(f.Operations)))
	metrics.AttrSetCount.WithLabelValues(f.Name).Set(float64(len(f.AttrSetOrder())))

	rootRel := emit.FindRootRelative(*specPath)
	args := os.Args[1:]

	switch {
	case *mode == "uapi" && *header:
		return emit.EmitUAPI(f, projectLicense, rootRel, args), nil
	case *mode == "kernel" && *header:
		return emit.EmitKernelHeader(f, projectLicense, rootRel, args), nil
	case *mode == "kernel" && *source:
		return emit.EmitKernelSource(f, projectLicense, rootRel, args), nil
	case *mode == "user" && *header:
		return emit.EmitUserHeader(f, projectLicense, rootRel, args, []string(userHdrs))
	case *mode == "user" && *source:
		return emit.EmitUserSource(f, projectLicense, rootRel, args)
	case *mode == "uapi" && *source:
		return nil, fmt.Errorf("--mode uapi has no --source artifact")
	}
	return nil, fmt.Errorf("unsupported mode/artifact combination: mode=%s header=%v source=%v", *mode, *header, *source)
}

func filterOps(ops []*ir.Operation, excludes []*regexp.Regexp) []*ir.Operation {
	var kept []*ir.Operation
	for _, op := range ops {
		excluded := false
		for _, re := range excludes {
			if re.MatchString(op.Name) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, op)
		}
	}
	return kept
}
