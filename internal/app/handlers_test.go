package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abhisek/mathdrill/internal/comms"
	"github.com/abhisek/mathdrill/internal/level"
)

func TestHandleLevelChoice(t *testing.T) {
	h := HandleLevelChoice(level.Default())

	tests := []struct {
		input  string
		status comms.Status
		id     int
	}{
		{"1", comms.StatusOK, 1},
		{" 2 ", comms.StatusOK, 2},
		{"3", comms.StatusError, 0},
		{"0", comms.StatusError, 0},
		{"one", comms.StatusError, 0},
		{"", comms.StatusError, 0},
	}

	for _, tc := range tests {
		res := h(tc.input)
		if res.Status != tc.status {
			t.Errorf("HandleLevelChoice(%q) status = %v, want %v", tc.input, res.Status, tc.status)
			continue
		}
		if res.Status == comms.StatusOK && res.Value.ID != tc.id {
			t.Errorf("HandleLevelChoice(%q) id = %d, want %d", tc.input, res.Value.ID, tc.id)
		}
		if res.Status == comms.StatusError && res.Message != "Incorrect format." {
			t.Errorf("HandleLevelChoice(%q) message = %q", tc.input, res.Message)
		}
	}
}

func TestHandleTaskSolution(t *testing.T) {
	tests := []struct {
		input  string
		status comms.Status
		right  bool
		output string
	}{
		{"7", comms.StatusOK, true, "Right!\n"},
		{" 7", comms.StatusOK, true, "Right!\n"},
		{"007", comms.StatusOK, true, "Right!\n"},
		{"8", comms.StatusOK, false, "Wrong!\n"},
		{"-7", comms.StatusOK, false, "Wrong!\n"},
		{"", comms.StatusError, false, ""},
		{"seven", comms.StatusError, false, ""},
		{"7a", comms.StatusError, false, ""},
		{"7.0", comms.StatusError, false, ""},
		{"+-", comms.StatusError, false, ""},
	}

	for _, tc := range tests {
		var out bytes.Buffer
		res := HandleTaskSolution(7, &out)(tc.input)
		if res.Status != tc.status || res.Value != tc.right {
			t.Errorf("HandleTaskSolution(7)(%q) = (%v, %v), want (%v, %v)",
				tc.input, res.Status, res.Value, tc.status, tc.right)
		}
		if out.String() != tc.output {
			t.Errorf("HandleTaskSolution(7)(%q) printed %q, want %q", tc.input, out.String(), tc.output)
		}
		if res.Status == comms.StatusError && res.Message != "Wrong format! Try again." {
			t.Errorf("HandleTaskSolution(7)(%q) message = %q", tc.input, res.Message)
		}
	}
}

func TestHandleSaveAnswer(t *testing.T) {
	for _, yes := range []string{"yes", "YES", "y", "Yes"} {
		res := HandleSaveAnswer(yes)
		if res.Status != comms.StatusOK || !res.Value {
			t.Errorf("HandleSaveAnswer(%q) = %+v, want ok/true", yes, res)
		}
	}
	for _, no := range []string{"no", "n", "Y", "yEs", " yes", ""} {
		res := HandleSaveAnswer(no)
		if res.Status != comms.StatusExit {
			t.Errorf("HandleSaveAnswer(%q) status = %v, want exit", no, res.Status)
		}
	}
}

func TestHandleName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"Ada", true},
		{strings.Repeat("a", 35), true},
		{strings.Repeat("é", 35), true},
		{strings.Repeat("a", 36), false},
		{"", false},
	}
	for _, tc := range tests {
		res := HandleName(tc.name)
		if got := res.Status == comms.StatusOK; got != tc.ok {
			t.Errorf("HandleName(len %d) ok = %v, want %v", len(tc.name), got, tc.ok)
		}
		if res.Value != tc.name {
			t.Errorf("HandleName returned %q, want %q", res.Value, tc.name)
		}
	}
}
