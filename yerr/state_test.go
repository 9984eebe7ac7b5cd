package yerr

import "testing"

func TestStoreLastBoundsChainToOne(t *testing.T) {
	s := NewState()
	tok := Token(1)
	s.SetThreadOptions(tok, OptStoreLast)
	for i := 0; i < 5; i++ {
		s.Log(tok, Item{Level: LError, Code: Validation, Message: "boom"})
		if got := s.Len(tok); got > 1 {
			t.Fatalf("Len() = %d under STORE_LAST, want <= 1", got)
		}
	}
}

func TestStoreAllAccumulates(t *testing.T) {
	s := NewState()
	tok := Token(2)
	s.SetThreadOptions(tok, OptStoreAll)
	for i := 0; i < 3; i++ {
		s.Log(tok, Item{Level: LError, Code: Validation, Message: "e"})
	}
	if got := s.Len(tok); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	s.Clear(tok)
	if got := s.Len(tok); got != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", got)
	}
}

func TestPerTokenIsolation(t *testing.T) {
	s := NewState()
	a, b := Token(10), Token(20)
	s.SetThreadOptions(a, OptStoreAll)
	s.SetThreadOptions(b, OptStoreAll)
	s.Log(a, Item{Level: LError, Message: "from a"})
	if got := s.LastMessage(b); got != "" {
		t.Fatalf("token b saw token a's message: %q", got)
	}
	if got := s.LastMessage(a); got != "from a" {
		t.Fatalf("LastMessage(a) = %q, want %q", got, "from a")
	}
}

func TestLevelFiltering(t *testing.T) {
	s := NewState()
	s.SetLevel(LWarning)
	tok := Token(1)
	s.SetThreadOptions(tok, OptStoreAll)
	s.Log(tok, Item{Level: LDebug, Message: "too verbose"})
	if got := s.Len(tok); got != 0 {
		t.Fatalf("debug message stored despite level=warning: len=%d", got)
	}
}
