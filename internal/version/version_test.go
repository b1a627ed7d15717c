package version

import "testing"

func TestInfo(t *testing.T) {
	got := Info("docdex")
	want := "docdex dev (commit unknown, built unknown)"
	if got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}
