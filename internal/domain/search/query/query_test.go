package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/arcadia-cloud/placedex/internal/domain"
	"github.com/arcadia-cloud/placedex/internal/domain/search/mode"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New("spicy food", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "spicy food" {
		t.Errorf("Text() = %q", q.Text())
	}
	if q.Mode() != mode.Semantic {
		t.Errorf("Mode() = %q, want semantic", q.Mode())
	}
}

func TestNew_Trims(t *testing.T) {
	q, err := New("  Lahore \n", mode.Literal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "Lahore" {
		t.Errorf("Text() = %q, want %q", q.Text(), "Lahore")
	}
}

func TestNew_RejectsEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := New(text, mode.Semantic); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("New(%q) error = %v, want ErrEmptyQuery", text, err)
		}
	}
}

func TestNew_RejectsInvalidMode(t *testing.T) {
	if _, err := New("hello", "hybrid"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNew_RejectsTooLong(t *testing.T) {
	if _, err := New(strings.Repeat("x", MaxLength+1), mode.Literal); err == nil {
		t.Error("expected error for oversized query")
	}
}
