package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsAndPrefixes(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters(&out, &errOut, false, false)

	l.Debugf("hidden %d", 1)
	l.Infof("started %s", "game")
	l.Warnf("slow")
	l.Errorf("broken: %v", "disk")
	l.Event("GAME_OVER", "abc", "score=10")

	s := out.String()
	if strings.Contains(s, "hidden") {
		t.Fatal("debug line written with debug disabled")
	}
	for _, want := range []string{"[SNAKE-INFO] started game", "[SNAKE-WARN] slow", "[EVENT:GAME_OVER] session:abc | score=10"} {
		if !strings.Contains(s, want) {
			t.Fatalf("stdout missing %q:\n%s", want, s)
		}
	}
	if !strings.Contains(errOut.String(), "[SNAKE-ERROR] broken: disk") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestDebugEnabled(t *testing.T) {
	var out bytes.Buffer
	l := NewWithWriters(&out, &out, true, true)
	l.Debugf("tick %d", 3)
	if !strings.Contains(out.String(), "tick 3") || !strings.Contains(out.String(), colorCyan) {
		t.Fatalf("out = %q", out.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Errorf("nothing")
}
