package index

import "testing"

func TestParse_BulletedIndex(t *testing.T) {
	src := []byte(`# Example Docs

## Guides

- [Getting Started](https://example.com/start): the basics
- [Advanced Usage](https://example.com/advanced)

## Reference

- [API](https://example.com/api): full reference
`)

	entries, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(entries), entries)
	}
	if entries[0].Title != "Getting Started" || entries[0].URL != "https://example.com/start" {
		t.Errorf("entry 0: %+v", entries[0])
	}
	if entries[2].Title != "API" {
		t.Errorf("entry 2: %+v", entries[2])
	}
}

func TestParse_IgnoresRelativeLinks(t *testing.T) {
	src := []byte("- [Local](/docs/local)\n- [Remote](https://example.com/r)\n")
	entries, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Title != "Remote" {
		t.Errorf("expected only the remote link, got %v", entries)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	entries, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}
