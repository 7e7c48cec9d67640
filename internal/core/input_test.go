package core

import "testing"

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(a.String())
		if err != nil {
			t.Fatalf("ParseAction(%q) failed: %v", a.String(), err)
		}
		if got != a {
			t.Errorf("ParseAction(%q) = %v, expected %v", a.String(), got, a)
		}
	}

	if _, err := ParseAction("jump"); err == nil {
		t.Error("ParseAction(\"jump\") should fail")
	}
	if _, err := ParseAction("none"); err == nil {
		t.Error("ActionNone should not be parseable")
	}
}

func TestPlayerIDValid(t *testing.T) {
	for _, id := range Players {
		if !id.Valid() {
			t.Errorf("%v should be valid", id)
		}
	}
	if PlayerID(0).Valid() {
		t.Error("player 0 should be invalid")
	}
	if PlayerID(MaxPlayers + 1).Valid() {
		t.Error("player beyond MaxPlayers should be invalid")
	}
}
