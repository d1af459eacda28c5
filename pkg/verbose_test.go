package dupscan

import "testing"

func TestSetDebugFlags(t *testing.T) {
	defer SetDebugFlags("")

	SetDebugFlags("walk,hashing")
	if !IsDebugEnabled("walk") {
		t.Error("Expected walk flag enabled")
	}
	if !IsDebugEnabled("hashing") {
		t.Error("Expected hashing flag enabled")
	}
	if IsDebugEnabled("other") {
		t.Error("Did not expect unknown flag enabled")
	}

	SetDebugFlags("walk:off,hashing:on")
	if IsDebugEnabled("walk") {
		t.Error("Expected walk flag disabled via key:value form")
	}
	if !IsDebugEnabled("hashing") {
		t.Error("Expected hashing flag enabled via key:value form")
	}

	SetDebugFlags("WALK")
	if !IsDebugEnabled("walk") {
		t.Error("Expected flag names to be case insensitive")
	}
}

func TestVerboseLevel(t *testing.T) {
	defer SetVerboseLevel(0)

	SetVerboseLevel(2)
	if GetVerboseLevel() != 2 {
		t.Errorf("Expected level 2, got %d", GetVerboseLevel())
	}
}
