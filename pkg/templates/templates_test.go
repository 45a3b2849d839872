package templates

import (
	"strings"
	"testing"
)

func TestEmbedded_LoadTemplate(t *testing.T) {
	loader := Embedded{}

	tests := []struct {
		name     string
		template string
		wantRoot string
	}{
		{name: "web part mapping", template: WebPartMapping, wantRoot: "<WebPartMapping"},
		{name: "page layout mapping", template: PageLayoutMapping, wantRoot: "<PageLayoutMapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := loader.LoadTemplate(tt.template)
			if err != nil {
				t.Fatalf("LoadTemplate(%q) error = %v", tt.template, err)
			}
			if !strings.Contains(string(data), tt.wantRoot) {
				t.Errorf("template %q missing root element %q", tt.template, tt.wantRoot)
			}
			if !strings.HasPrefix(string(data), "<?xml") {
				t.Errorf("template %q missing XML declaration", tt.template)
			}
		})
	}
}

func TestEmbedded_UnknownTemplate(t *testing.T) {
	if _, err := (Embedded{}).LoadTemplate("nope.xml"); err == nil {
		t.Error("LoadTemplate(nope.xml) succeeded, want error")
	}
}

func TestStatic(t *testing.T) {
	loader := Static{"a.xml": []byte("<A/>")}

	data, err := loader.LoadTemplate("a.xml")
	if err != nil {
		t.Fatalf("LoadTemplate(a.xml) error = %v", err)
	}
	if string(data) != "<A/>" {
		t.Errorf("LoadTemplate(a.xml) = %q, want <A/>", data)
	}

	if _, err := loader.LoadTemplate("b.xml"); err == nil {
		t.Error("LoadTemplate(b.xml) succeeded, want error")
	}
}
