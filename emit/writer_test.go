package emit

import (
	"strings"
	"testing"
)

func TestCodeWriterIndent(t *testing.T) {
	cw := NewCodeWriter()
	cw.BlockStart("int main(void)")
	cw.P("return 0;")
	cw.BlockEnd("")
	got := cw.String()
	want := "int main(void) {\n\treturn 0;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCodeWriterElseCoalesce(t *testing.T) {
	cw := NewCodeWriter()
	cw.BlockStart("if (x)")
	cw.P("foo();")
	cw.BlockEnd("else")
	cw.P("bar();")
	cw.BlockEnd("")
	got := cw.String()
	if !strings.Contains(got, "} else {") {
		t.Errorf("expected coalesced else, got %q", got)
	}
	if strings.Contains(got, "}\nelse") {
		t.Errorf("else was not coalesced onto closing brace: %q", got)
	}
}

func TestCodeWriterIfdefCoalesce(t *testing.T) {
	cw := NewCodeWriter()
	cw.IfdefBlock("CONFIG_FOO", func() { cw.P("a();") })
	cw.IfdefBlock("CONFIG_FOO", func() { cw.P("b();") })
	cw.CloseIfdef()
	got := cw.String()
	if strings.Count(got, "#ifdef CONFIG_FOO") != 1 {
		t.Errorf("expected single coalesced #ifdef region, got %q", got)
	}
	if strings.Count(got, "#endif") != 1 {
		t.Errorf("expected single #endif, got %q", got)
	}
}

func TestCodeWriterIfdefSwitch(t *testing.T) {
	cw := NewCodeWriter()
	cw.IfdefBlock("CONFIG_FOO", func() { cw.P("a();") })
	cw.IfdefBlock("CONFIG_BAR", func() { cw.P("b();") })
	cw.CloseIfdef()
	got := cw.String()
	if strings.Count(got, "#endif") != 2 {
		t.Errorf("expected two #endif regions for differing conditions, got %q", got)
	}
}

func TestWriteFuncProtoWraps(t *testing.T) {
	cw := NewCodeWriter()
	cw.WriteFuncProto("int", "a_very_long_function_name_that_forces_wrapping",
		[]string{"struct very_long_type_name_for_param *first_parameter_name",
			"struct another_long_type_name *second_parameter_name"}, ";")
	got := cw.String()
	if !strings.Contains(got, "\n") {
		t.Errorf("expected wrapped prototype to span multiple lines, got %q", got)
	}
}
