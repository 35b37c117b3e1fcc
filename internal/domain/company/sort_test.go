package company

import "testing"

func names(results []Scored) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestSort_NameCaseInsensitive(t *testing.T) {
	in := Unscored([]Company{
		{Name: "zeta"},
		{Name: "Alpha"},
		{Name: "beta"},
	})

	got := names(Sort(in, KeyName, Asc))
	want := []string{"Alpha", "beta", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ascending order = %v, want %v", got, want)
		}
	}
}

func TestSort_RoundTrip(t *testing.T) {
	// Ascending then descending on all-distinct keys is an exact reversal.
	in := Unscored([]Company{
		{Name: "delta"}, {Name: "alpha"}, {Name: "charlie"}, {Name: "bravo"},
	})

	asc := Sort(in, KeyName, Asc)
	desc := Sort(in, KeyName, Desc)
	for i := range asc {
		if asc[i].Name != desc[len(desc)-1-i].Name {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", names(asc), names(desc))
		}
	}
}

func TestSort_SimilarityDefaultsMissingToZero(t *testing.T) {
	in := []Scored{
		{Company: Company{Name: "unscored"}},
		{Company: Company{Name: "high"}, Similarity: 0.9, HasScore: true},
		{Company: Company{Name: "low"}, Similarity: 0.2, HasScore: true},
	}

	got := names(Sort(in, KeySimilarity, Desc))
	want := []string{"high", "low", "unscored"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("similarity desc = %v, want %v", got, want)
		}
	}
}

func TestSort_MissingStringsFirstAscLastDesc(t *testing.T) {
	in := Unscored([]Company{
		{Name: "a", Location: "Boston"},
		{Name: "b"},
		{Name: "c", Location: "Austin"},
	})

	asc := Sort(in, KeyLocation, Asc)
	if asc[0].Name != "b" {
		t.Errorf("ascending: missing value should sort first, got %v", names(asc))
	}

	desc := Sort(in, KeyLocation, Desc)
	if desc[len(desc)-1].Name != "b" {
		t.Errorf("descending: missing value should sort last, got %v", names(desc))
	}
}

func TestSort_TagsByJoinedString(t *testing.T) {
	in := Unscored([]Company{
		{Name: "second", Tags: []string{"saas", "b2b"}},
		{Name: "first", Tags: []string{"analytics"}},
	})

	got := names(Sort(in, KeyTags, Asc))
	if got[0] != "first" || got[1] != "second" {
		t.Fatalf("tags asc = %v", got)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := Unscored([]Company{{Name: "b"}, {Name: "a"}})
	Sort(in, KeyName, Asc)
	if in[0].Name != "b" {
		t.Error("input slice was reordered")
	}
}

func TestParseKey(t *testing.T) {
	if _, err := ParseKey("similarity"); err != nil {
		t.Errorf("similarity should parse: %v", err)
	}
	if _, err := ParseKey("bogus"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestParseOrder(t *testing.T) {
	got, err := ParseOrder("")
	if err != nil || got != Desc {
		t.Errorf("empty order should default to desc, got %q err %v", got, err)
	}
	if _, err := ParseOrder("sideways"); err == nil {
		t.Error("expected error for unknown order")
	}
}
