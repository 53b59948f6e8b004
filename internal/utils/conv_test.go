package utils

import "testing"

func TestStringToInt(t *testing.T) {
	if got := StringToInt("42"); got != 42 {
		t.Errorf("StringToInt(\"42\") = %d", got)
	}
	if got := StringToInt("-7"); got != -7 {
		t.Errorf("StringToInt(\"-7\") = %d", got)
	}
	if got := StringToInt("nope"); got != 0 {
		t.Errorf("StringToInt(\"nope\") = %d, want 0", got)
	}
}

func TestStringToUint(t *testing.T) {
	if got := StringToUint("42"); got != 42 {
		t.Errorf("StringToUint(\"42\") = %d", got)
	}
	if got := StringToUint("-7"); got != 0 {
		t.Errorf("StringToUint(\"-7\") = %d, want 0", got)
	}
	if got := StringToUint(""); got != 0 {
		t.Errorf("StringToUint(\"\") = %d, want 0", got)
	}
}
