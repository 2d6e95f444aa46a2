package frames

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeTemplate(t, tmpDir, "cart.html", `<frame id="cart-items"><ul></ul></frame>`)
	writeTemplate(t, tmpDir, "items/row.html", `<frame id="item_@Model.Id" prefix="item_">row</frame>`)
	writeTemplate(t, tmpDir, "items/bad.html", `<frame id="order_@Model.Id">row</frame>`)
	writeTemplate(t, tmpDir, "notes.txt", `<frame id="ignored">not a template</frame>`)

	report, err := ScanDir(tmpDir, DefaultScanConfig, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Documents) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(report.Documents))
	}

	// Documents are sorted by logical template path.
	var templates []string
	for _, doc := range report.Documents {
		templates = append(templates, doc.Template)
	}
	want := []string{"cart.html", "items/bad.html", "items/row.html"}
	if !reflect.DeepEqual(templates, want) {
		t.Errorf("document order = %v, want %v", templates, want)
	}

	if len(report.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %+v", len(report.Diagnostics), report.Diagnostics)
	}
	d := report.Diagnostics[0]
	if d.Kind != KindMissingPrefix {
		t.Errorf("diagnostic kind = %s, want %s", d.Kind, KindMissingPrefix)
	}
	if d.Template != "items/bad.html" {
		t.Errorf("diagnostic template = %q, want items/bad.html", d.Template)
	}
	if d.Line != 1 {
		t.Errorf("diagnostic line = %d, want 1", d.Line)
	}
}

func TestScanDirDeterministic(t *testing.T) {
	tmpDir := t.TempDir()
	writeTemplate(t, tmpDir, "a.html", `<frame id="a">x</frame>`)
	writeTemplate(t, tmpDir, "b.html", `<frame id="b_@i" prefix="c_">x</frame>`)
	writeTemplate(t, tmpDir, "c.html", `<frame id="c">x</frame>`)

	first, err := ScanDir(tmpDir, DefaultScanConfig, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ScanDir(tmpDir, DefaultScanConfig, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scans of unchanged input differ:\n  first: %+v\n  second: %+v", first, second)
	}
}

func TestIsTemplateFile(t *testing.T) {
	cases := []struct {
		path     string
		expected bool
	}{
		{"views/index.html", true},
		{"views/index.HTML", true},
		{"base.gohtml", true},
		{"partial.tmpl", true},
		{"partial.tpl", true},
		{"old.htm", true},
		{"script.js", false},
		{"style.css", false},
		{"README", false},
	}
	for _, tc := range cases {
		if got := IsTemplateFile(tc.path); got != tc.expected {
			t.Errorf("IsTemplateFile(%q) = %v, want %v", tc.path, got, tc.expected)
		}
	}
}
