package main

import (
	"regexp"
	"strings"
	"testing"

	"github.com/m-lab/nlgen/ir"
)

func resetFlags() {
	*mode = ""
	*specPath = ""
	*header = false
	*source = false
	*outPath = ""
	*cmpOut = false
	excludeOps = nil
	userHdrs = nil
}

func TestValidateFlagsRequiresMode(t *testing.T) {
	resetFlags()
	*specPath = "x.yaml"
	*header = true
	if err := validateFlags(); err == nil {
		t.Fatal("expected error for missing --mode")
	}
}

func TestValidateFlagsRejectsBothHeaderAndSource(t *testing.T) {
	resetFlags()
	*mode = "uapi"
	*specPath = "x.yaml"
	*header = true
	*source = true
	if err := validateFlags(); err == nil {
		t.Fatal("expected error when both --header and --source are set")
	}
}

func TestValidateFlagsRejectsNeitherHeaderNorSource(t *testing.T) {
	resetFlags()
	*mode = "uapi"
	*specPath = "x.yaml"
	if err := validateFlags(); err == nil {
		t.Fatal("expected error when neither --header nor --source is set")
	}
}

func TestValidateFlagsAccepts(t *testing.T) {
	resetFlags()
	*mode = "uapi"
	*specPath = "x.yaml"
	*header = true
	if err := validateFlags(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunUAPIHeader(t *testing.T) {
	resetFlags()
	*mode = "uapi"
	*specPath = "testdata/ethtool_split.yaml"
	*header = true

	out, err := run()
	if err != nil {
		t.Fatalf("run(): %v", err)
	}
	if !strings.Contains(string(out), "ETHTOOL_FAMILY_NAME") {
		t.Errorf("expected family name macro in output, got:\n%s", out)
	}
}

func TestRunRejectsLicenseMismatch(t *testing.T) {
	resetFlags()
	*mode = "uapi"
	*specPath = "testdata/bad_license.yaml"
	*header = true

	_, err := run()
	if err == nil {
		t.Fatal("expected license mismatch error")
	}
}

func TestFilterOps(t *testing.T) {
	ops := []*ir.Operation{{Name: "foo-get"}, {Name: "foo-set"}, {Name: "bar-get"}}
	re := regexp.MustCompile(`^foo-`)
	kept := filterOps(ops, []*regexp.Regexp{re})
	if len(kept) != 1 || kept[0].Name != "bar-get" {
		t.Fatalf("filterOps kept %v, want only bar-get", kept)
	}
}
