package views

import (
	"os"
	"path/filepath"
	"testing"
)

// Every page variant must map to a template file that actually exists.
func TestEveryVariantHasATemplate(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range All() {
		name := TemplateName(p)
		if name == "" {
			t.Fatalf("%T maps to an empty template name", p)
		}
		if seen[name] {
			t.Errorf("template %s mapped by more than one variant", name)
		}
		seen[name] = true

		path := filepath.Join("..", "..", "templates", name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%T maps to %s, which does not exist: %v", p, name, err)
		}
	}
}

func TestUnknownVariantPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("TemplateName must panic on an unmapped variant")
		}
	}()
	type rogue struct{ Page }
	TemplateName(rogue{})
}
