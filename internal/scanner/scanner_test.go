package scanner

import (
	"context"
	"reflect"
	"testing"

	"RegulatorRadar/internal/domain"
)

type namedScanner string

func (n namedScanner) Name() string { return string(n) }

func (n namedScanner) Scan(context.Context, Request) ([]domain.FeedItem, error) { return nil, nil }

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(namedScanner("rss"))
	reg.Register(namedScanner("listing"))

	if _, err := reg.Resolve("rss"); err != nil {
		t.Fatalf("Resolve rss: %v", err)
	}
	if _, err := reg.Resolve("atom"); err == nil {
		t.Fatalf("expected error for unknown scanner")
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"listing", "rss"}) {
		t.Fatalf("unexpected names: %v", got)
	}

	var zero Registry
	zero.Register(namedScanner("rss"))
	if _, err := zero.Resolve("rss"); err != nil {
		t.Fatalf("zero registry should accept registrations: %v", err)
	}
}

func TestRequestOption(t *testing.T) {
	t.Parallel()

	req := Request{Options: map[string]string{"item": "li.release", "empty": ""}}
	if got := req.Option("item", "article"); got != "li.release" {
		t.Fatalf("unexpected option: %s", got)
	}
	if got := req.Option("empty", "fallback"); got != "fallback" {
		t.Fatalf("empty value should fall back, got %s", got)
	}
	if got := (Request{}).Option("item", "article"); got != "article" {
		t.Fatalf("nil map should fall back, got %s", got)
	}
}
