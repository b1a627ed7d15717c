package doctree

import (
	"encoding/json"
	"testing"
)

const sampleIndex = `{
  "program": {
    "id": "toplevel", "full_name": "Top Level Namespace", "kind": "module",
    "doc": "", "summary": "", "path": "toplevel.html",
    "instance_methods": [], "class_methods": [], "constructors": [], "macros": [],
    "constants": [],
    "types": [{
      "id": "Foo::Bar", "full_name": "Foo::Bar", "kind": "class",
      "doc": "Bar utility", "summary": "<p>Bar utility</p>", "path": "Foo/Bar.html",
      "instance_methods": [{
        "id": "baz(x)-instance-method", "name": "baz",
        "args": [{"external_name": "x"}], "args_string": "(x)",
        "summary": "", "doc": ""
      }],
      "constants": [{"id": "MAX", "name": "MAX", "value": "10", "summary": "", "doc": ""}]
    }]
  }
}`

func TestDecode_FieldNames(t *testing.T) {
	var p Program
	if err := json.Unmarshal([]byte(sampleIndex), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.Root.FullName != "Top Level Namespace" {
		t.Errorf("root full_name = %q", p.Root.FullName)
	}
	if len(p.Root.Types) != 1 {
		t.Fatalf("expected 1 nested type, got %d", len(p.Root.Types))
	}
	bar := p.Root.Types[0]
	if bar.Doc != "Bar utility" || bar.Path != "Foo/Bar.html" || bar.Kind != "class" {
		t.Errorf("unexpected type: %+v", bar)
	}
	if len(bar.InstanceMethods) != 1 || bar.InstanceMethods[0].Args[0].ExternalName != "x" {
		t.Errorf("unexpected methods: %+v", bar.InstanceMethods)
	}
	if bar.InstanceMethods[0].ArgsString != "(x)" {
		t.Errorf("args_string = %q", bar.InstanceMethods[0].ArgsString)
	}
	if len(bar.Constants) != 1 || bar.Constants[0].Value != "10" {
		t.Errorf("unexpected constants: %+v", bar.Constants)
	}
	// Missing arrays decode as nil and are safe to range over.
	if bar.Macros != nil || bar.Types != nil {
		t.Errorf("expected nil slices for missing fields")
	}
}

func TestShortName(t *testing.T) {
	tests := []struct {
		full, want string
	}{
		{"Foo::Bar", "Bar"},
		{"Foo::Bar::Baz", "Baz"},
		{"IO", "IO"},
		{"::Leading", "::Leading"},
		{"", ""},
	}
	for _, tc := range tests {
		typ := Type{FullName: tc.full}
		if got := typ.ShortName(); got != tc.want {
			t.Errorf("ShortName(%q) = %q, want %q", tc.full, got, tc.want)
		}
	}
}

func TestCount(t *testing.T) {
	var p Program
	if err := json.Unmarshal([]byte(sampleIndex), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := p.Root.Count()
	if s.Types != 2 || s.Methods != 1 || s.Constants != 1 {
		t.Errorf("unexpected stats: %+v", s)
	}
}
