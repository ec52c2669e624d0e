package workshop

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestElementPointer(t *testing.T) {
	t.Run("Valid While Capacity Remains", func(t *testing.T) {
		s := make([]int, 1, 4)
		s[0] = 1

		p := ElementPointer(s, 0)
		s = append(s, 2) // stays inside the original array

		SetFirst(s, 42)
		if *p != 42 {
			t.Errorf("expected pointer to observe write, got %d", *p)
		}
	})

	t.Run("Stale After Reallocation", func(t *testing.T) {
		s := make([]int, 1, 1)
		s[0] = 1

		p := ElementPointer(s, 0)
		s = GrowPastCapacity(s)

		SetFirst(s, 42)
		if *p == 42 {
			t.Error("expected pointer to miss write after reallocation")
		}
		if *p != 1 {
			t.Errorf("expected stale pointer to keep old value, got %d", *p)
		}
	})

	t.Run("Indexing Stays Correct", func(t *testing.T) {
		s := make([]int, 1, 1)
		s[0] = 1

		s = GrowPastCapacity(s)
		SetFirst(s, 42)

		if got := FirstByIndex(s); got != 42 {
			t.Errorf("expected fresh read to observe write, got %d", got)
		}
	})
}

func TestSubsliceAliasing(t *testing.T) {
	t.Run("Head Shares Backing Array", func(t *testing.T) {
		parent := []byte("spotcheck")
		head := Head(parent, 4)

		if !Shared(parent, head) {
			t.Fatal("expected head to alias parent")
		}

		head[0] = 'S'
		if parent[0] != 'S' {
			t.Error("expected write through subslice to reach parent")
		}
	})

	t.Run("HeadCopy Detaches", func(t *testing.T) {
		parent := []byte("spotcheck")
		head := HeadCopy(parent, 4)

		if Shared(parent, head) {
			t.Fatal("expected copy to use its own array")
		}

		head[0] = 'S'
		if parent[0] != 's' {
			t.Error("expected parent untouched by writes to copy")
		}
	})
}

func TestGenreTally(t *testing.T) {
	t.Run("Concurrent Adds", func(t *testing.T) {
		tally := NewGenreTally()
		genres := []string{"indie rock", "pop", "art rock"}

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tally.Add(genres[i%len(genres)])
			}(i)
		}
		wg.Wait()

		if total := tally.Total(); total != 100 {
			t.Errorf("expected 100 recorded plays, got %d", total)
		}
	})

	t.Run("Snapshot Is Detached", func(t *testing.T) {
		tally := NewGenreTally()
		tally.Add("pop")

		snap := tally.Snapshot()
		snap["pop"] = 99

		if got := tally.Get("pop"); got != 1 {
			t.Errorf("expected tally unaffected by snapshot writes, got %d", got)
		}
	})
}

func TestPlayhead(t *testing.T) {
	t.Run("Value Receiver Mutates A Copy", func(t *testing.T) {
		p := Playhead{}
		p.SkipValue()

		if p.Position != 0 {
			t.Errorf("expected position unchanged, got %d", p.Position)
		}
	})

	t.Run("Pointer Receiver Mutates In Place", func(t *testing.T) {
		p := Playhead{}
		p.Skip()

		if p.Position != 1 {
			t.Errorf("expected position advanced, got %d", p.Position)
		}
	})

	t.Run("Pointer Satisfies Skipper", func(t *testing.T) {
		var s Skipper = &Playhead{}
		s.Skip()
		s.Skip()

		if got := s.(*Playhead).Position; got != 2 {
			t.Errorf("expected position 2 through interface, got %d", got)
		}
	})
}

func TestReplay(t *testing.T) {
	t.Run("Reader Is Consumed Once", func(t *testing.T) {
		r := strings.NewReader("top artists payload")

		first, err := Drain(r)
		if err != nil {
			t.Fatalf("failed to drain: %v", err)
		}
		if len(first) == 0 {
			t.Fatal("expected first drain to return data")
		}

		second, err := Drain(r)
		if err != nil {
			t.Fatalf("failed to drain again: %v", err)
		}
		if len(second) != 0 {
			t.Errorf("expected consumed reader to be empty, got %d bytes", len(second))
		}
	})

	t.Run("Replay Serves Repeated Reads", func(t *testing.T) {
		replay, err := NewReplay(strings.NewReader("top artists payload"))
		if err != nil {
			t.Fatalf("failed to capture: %v", err)
		}

		for i := 0; i < 3; i++ {
			data, err := Drain(replay.Reader())
			if err != nil {
				t.Fatalf("failed to drain replay: %v", err)
			}
			if !bytes.Equal(data, []byte("top artists payload")) {
				t.Errorf("read %d: unexpected data %q", i, data)
			}
		}

		if replay.Len() != len("top artists payload") {
			t.Errorf("unexpected captured length %d", replay.Len())
		}
	})
}
