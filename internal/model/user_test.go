package model

import "testing"

func TestUsernameSet_ByPlatform(t *testing.T) {
	set := UsernameSet{LeetCode: "alice", Codeforces: "alice_cf"}

	got := set.ByPlatform()
	if len(got) != 2 {
		t.Fatalf("ByPlatform has %d entries, want 2", len(got))
	}
	if got["leetcode"] != "alice" {
		t.Errorf("leetcode = %q, want alice", got["leetcode"])
	}
	if got["codeforces"] != "alice_cf" {
		t.Errorf("codeforces = %q, want alice_cf", got["codeforces"])
	}
	if _, ok := got["gfg"]; ok {
		t.Error("unconnected platform must not appear")
	}
}

func TestUsernameSet_Empty(t *testing.T) {
	if !(UsernameSet{}).Empty() {
		t.Error("zero set should be empty")
	}
	if (UsernameSet{GFG: "bob"}).Empty() {
		t.Error("set with one handle should not be empty")
	}
}
