package service

import (
	"strings"
	"testing"
)

func TestGenerateIDShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateID()
		if len(id) != 32 {
			t.Fatalf("id length = %d, want 32: %q", len(id), id)
		}
		if strings.Contains(id, "-") {
			t.Fatalf("id contains hyphen: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id: %q", id)
		}
		seen[id] = true
	}
}
