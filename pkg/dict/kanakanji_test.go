package dict

import (
	"reflect"
	"sort"
	"testing"
)

func TestKanaKanjiDictFind(t *testing.T) {
	d := Build(map[string][]string{
		"わたし": {"私", "渡し"},
		"なまえ": {"名前"},
	}, "")

	got := d.Find("わたし")
	sort.Strings(got)
	want := []string{"渡し", "私"}
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find(わたし) = %v, want %v", got, want)
	}

	if got := d.Find("みつからない"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
}

func TestKanaKanjiDictBuildSQLite(t *testing.T) {
	d, err := BuildSQLite(":memory:", map[string][]string{
		"すし": {"🍣", "寿司"},
	}, "")
	if err != nil {
		t.Fatalf("BuildSQLite: %v", err)
	}
	defer d.Close()

	got := d.Find("すし")
	sort.Strings(got)
	want := []string{"寿司", "🍣"}
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Find(すし) = %v, want %v", got, want)
	}
}

func TestKanaKanjiDictAllYomis(t *testing.T) {
	entries := map[string][]string{
		"わたし": {"私", "渡し"},
		"なまえ": {"名前"},
	}
	d := Build(entries, Fingerprint(entries))

	got := d.AllYomis()
	want := []string{"なまえ", "わたし"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllYomis() = %v, want %v", got, want)
	}
}

func TestKanaKanjiDictCacheSerializedRoundTrip(t *testing.T) {
	entries := map[string][]string{
		"わたし": {"私", "渡し"},
		"なまえ": {"名前"},
	}
	fingerprint := Fingerprint(entries)
	d := Build(entries, fingerprint)

	if got := d.CacheSerialized(); got != fingerprint {
		t.Errorf("CacheSerialized() = %q, want %q", got, fingerprint)
	}

	// A dictionary built with the same entries reproduces the same
	// fingerprint, so a loader can detect "nothing changed" and skip a
	// rebuild; a changed entry set must not.
	if got := Fingerprint(entries); got != fingerprint {
		t.Errorf("Fingerprint is not stable across calls: %q vs %q", got, fingerprint)
	}
	changed := map[string][]string{"わたし": {"私"}, "なまえ": {"名前"}}
	if Fingerprint(changed) == fingerprint {
		t.Errorf("Fingerprint should differ when entries differ")
	}
}

func TestKanaKanjiDictNoCacheSerialized(t *testing.T) {
	d := Build(map[string][]string{"わたし": {"私"}}, "")
	if got := d.CacheSerialized(); got != "" {
		t.Errorf("CacheSerialized() = %q, want empty when Build was given no fingerprint", got)
	}
}
