package graph

import "testing"

func TestWordNodeSentinels(t *testing.T) {
	bos := CreateBOS()
	if bos.Surface != "__BOS__" || bos.Yomi != "__BOS__" || bos.StartPos != 0 {
		t.Errorf("CreateBOS() = %+v", bos)
	}
	eos := CreateEOS(9)
	if eos.Surface != "__EOS__" || eos.Yomi != "__EOS__" || eos.StartPos != 9 {
		t.Errorf("CreateEOS(9) = %+v", eos)
	}
}

func TestWordNodeKey(t *testing.T) {
	n := NewWordNode(0, "私", "わたし", nil)
	if got, want := n.Key(), "私/わたし"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}
