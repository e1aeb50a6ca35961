package testutil

import (
	"context"
	"errors"
	"testing"
)

func TestFakeRunnerRepliesInOrderAndRepeatsLast(t *testing.T) {
	f := NewFakeRunner().Script("dmesg", "one").Script("dmesg", "two")
	ctx := context.Background()
	for _, want := range []string{"one", "two", "two"} {
		got, err := f.Run(ctx, "dmesg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if n := f.Count("dmesg"); n != 3 {
		t.Fatalf("expected 3 calls, got %d", n)
	}
}

func TestFakeRunnerFailAndUnscripted(t *testing.T) {
	f := NewFakeRunner().Fail("sh -c rmmod abc", "permission denied")
	_, err := f.Run(context.Background(), "sh", "-c", "rmmod abc")
	if err == nil || err.Error() != "permission denied" {
		t.Fatalf("expected permission denied, got %v", err)
	}
	_, err = f.Run(context.Background(), "modinfo", "abc")
	if !errors.Is(err, ErrUnscripted) {
		t.Fatalf("expected ErrUnscripted, got %v", err)
	}
}
