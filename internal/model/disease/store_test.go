package disease

import "testing"

func TestMatchFindsKeywordCaseInsensitive(t *testing.T) {
	store := NewMemoryStore(Seed())

	entry, ok := store.Match("What causes Rice Blast?")
	if !ok {
		t.Fatal("expected a match for rice blast question")
	}
	if entry.Keyword != "rice blast" {
		t.Fatalf("unexpected keyword: got %q", entry.Keyword)
	}
	if entry.Description == "" {
		t.Fatal("matched entry has empty description")
	}
}

func TestMatchPrefersDeclarationOrder(t *testing.T) {
	store := NewMemoryStore(Seed())

	// "narrow brown spot" contains "brown spot", which is declared first,
	// so the scan must stop at the earlier, less specific keyword.
	entry, ok := store.Match("tell me about narrow brown spot")
	if !ok {
		t.Fatal("expected a match")
	}
	if entry.Keyword != "brown spot" {
		t.Fatalf("expected first-declared keyword to win, got %q", entry.Keyword)
	}
}

func TestMatchNoKeyword(t *testing.T) {
	store := NewMemoryStore(Seed())

	if _, ok := store.Match("tell me about aliens"); ok {
		t.Fatal("expected no match for unrelated question")
	}
}

func TestSeedIsNonEmptyWithLowercaseKeywords(t *testing.T) {
	entries := Seed()
	if len(entries) == 0 {
		t.Fatal("seed knowledge base is empty")
	}
	for _, entry := range entries {
		if entry.Keyword == "" || entry.Name == "" || entry.Description == "" {
			t.Fatalf("incomplete entry: %+v", entry)
		}
	}
}
