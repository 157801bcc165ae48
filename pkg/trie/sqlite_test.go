package trie

import "testing"

func TestBuildSQLiteStorePredictiveSearch(t *testing.T) {
	store, err := BuildSQLiteStore(":memory:", keysOf("わたし", "わた", "わし", "ほげほげ"))
	if err != nil {
		t.Fatalf("BuildSQLiteStore: %v", err)
	}
	defer store.Close()

	if store.NumKeys() != 4 {
		t.Fatalf("NumKeys() = %d, want 4", store.NumKeys())
	}

	var got []string
	store.PredictiveSearch([]byte("わた"), func(key []byte, id int) bool {
		got = append(got, string(key))
		return true
	})
	want := []string{"わた", "わたし"}
	if len(got) != len(want) {
		t.Fatalf("PredictiveSearch(わた) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildSQLiteStoreCommonPrefixSearch(t *testing.T) {
	store, err := BuildSQLiteStore(":memory:", keysOf("わたし", "わた", "わし"))
	if err != nil {
		t.Fatalf("BuildSQLiteStore: %v", err)
	}
	defer store.Close()

	var got []string
	store.CommonPrefixSearch([]byte("わたしのきもち"), func(key []byte, id int) bool {
		got = append(got, string(key))
		return true
	})
	want := []string{"わた", "わたし"}
	if len(got) != len(want) {
		t.Fatalf("CommonPrefixSearch = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSQLiteStoreIdsStableAcrossRebuild(t *testing.T) {
	keys := keysOf("c", "ab", "abc")

	first, err := BuildSQLiteStore(":memory:", keys)
	if err != nil {
		t.Fatalf("BuildSQLiteStore: %v", err)
	}
	defer first.Close()

	ids := map[string]int{}
	first.PredictiveSearch(nil, func(key []byte, id int) bool {
		ids[string(key)] = id
		return true
	})

	second, err := BuildSQLiteStore(":memory:", keys)
	if err != nil {
		t.Fatalf("BuildSQLiteStore: %v", err)
	}
	defer second.Close()

	second.PredictiveSearch(nil, func(key []byte, id int) bool {
		if ids[string(key)] != id {
			t.Errorf("id for %q changed between rebuilds: %d vs %d", key, ids[string(key)], id)
		}
		return true
	})
}

func TestSQLiteBuilderBuild(t *testing.T) {
	var builder Builder = SQLiteBuilder{Path: ":memory:"}
	store, err := builder.Build(keysOf("わたし", "わた"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer store.Close()

	if store.NumKeys() != 2 {
		t.Fatalf("NumKeys() = %d, want 2", store.NumKeys())
	}
}

func TestIncrementBytes(t *testing.T) {
	cases := []struct {
		in   []byte
		want []byte
	}{
		{[]byte("ab"), []byte("ac")},
		{[]byte{0x01, 0xFF}, []byte{0x02}},
		{[]byte{0xFF, 0xFF}, nil},
		{nil, nil},
	}
	for _, c := range cases {
		got := incrementBytes(c.in)
		if string(got) != string(c.want) {
			t.Errorf("incrementBytes(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
