package prompt

import (
	"strings"
	"testing"
)

func TestBuildContainsRubric(t *testing.T) {
	p := Build("iPhone 17 Pro vs S26 Ultra", "Tech", Mode{})

	for _, want := range []string{
		"iPhone 17 Pro vs S26 Ultra",
		"Tech",
		"Curiosity Gap",
		"Entity Recognition",
		"Trustworthiness",
		"Discover Potential",
		"exactly 3 better headlines",
		"sentence case",
		"Predicted CTR",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q\n%s", want, p)
		}
	}
	if strings.Contains(p, "REASONING LOG") {
		t.Error("default mode should not request a reasoning log")
	}
}

func TestBuildDeterministic(t *testing.T) {
	m := Mode{ReasoningLog: true, Verbosity: Detailed}
	if Build("a", "b", m) != Build("a", "b", m) {
		t.Error("Build() is not deterministic")
	}
}

func TestBuildModeNeverChangesContract(t *testing.T) {
	modes := []Mode{
		{},
		{ReasoningLog: true},
		{Verbosity: Detailed},
		{ReasoningLog: true, Verbosity: Detailed},
	}
	for _, m := range modes {
		p := Build("Headline", "Topic", m)
		for _, a := range Axes {
			if strings.Count(p, a.Name) != 1 {
				t.Errorf("mode %s: axis %q appears %d times", m.Signature(), a.Name, strings.Count(p, a.Name))
			}
		}
		if !strings.Contains(p, "exactly 3 better headlines") {
			t.Errorf("mode %s: alternates contract missing", m.Signature())
		}
		if m.ReasoningLog != strings.Contains(p, "REASONING LOG") {
			t.Errorf("mode %s: reasoning log section mismatch", m.Signature())
		}
	}
}

func TestModeSignature(t *testing.T) {
	if (Mode{}).Signature() != (Mode{Verbosity: Concise}).Signature() {
		t.Error("empty verbosity should sign as concise")
	}
	if (Mode{}).Signature() == (Mode{ReasoningLog: true}).Signature() {
		t.Error("reasoning flag must change the signature")
	}
}
