package sparse

import "testing"

func TestSetBasic(t *testing.T) {
	s := NewSet(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSetInsertionOrder(t *testing.T) {
	s := NewSet(100)
	s.Insert(5)
	s.Insert(2)
	s.Insert(8)
	s.Insert(1)

	expected := []uint32{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range values {
		if v != expected[i] {
			t.Errorf("at index %d: expected %d, got %d", i, expected[i], v)
		}
	}
}

func TestSetRemove(t *testing.T) {
	s := NewSet(100)
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)

	s.Remove(2)
	if s.Contains(2) {
		t.Error("set should not contain 2 after remove")
	}
	if s.Len() != 2 {
		t.Errorf("len should be 2 after remove, got %d", s.Len())
	}
	if !s.Contains(1) || !s.Contains(3) {
		t.Error("set should still contain 1 and 3")
	}
}

func TestSetRemoveLastElement(t *testing.T) {
	s := NewSet(10)
	s.Insert(5)

	s.Remove(5)
	if s.Len() != 0 {
		t.Errorf("expected empty set after removing last element, got %d", s.Len())
	}
	if s.Contains(5) {
		t.Error("5 should not be in set after removal")
	}
}

func TestSetRemoveNonExistent(t *testing.T) {
	s := NewSet(10)
	s.Insert(5)

	s.Remove(3)
	if s.Len() != 1 {
		t.Errorf("expected Len=1, got %d", s.Len())
	}
}

func TestSetClearPreservesCapacity(t *testing.T) {
	s := NewSet(100)
	for i := uint32(0); i < 50; i++ {
		s.Insert(i)
	}
	s.Clear()

	for i := uint32(0); i < 50; i++ {
		s.Insert(i)
	}
	if s.Len() != 50 {
		t.Errorf("len should be 50, got %d", s.Len())
	}
}

func TestSetCrossValidation(t *testing.T) {
	// garbage values left in sparse after Clear must not cause false positives
	s := NewSet(100)
	s.Insert(5)
	s.Insert(10)
	s.Clear()

	if s.Contains(5) || s.Contains(10) {
		t.Error("cleared set should not contain old values")
	}

	s.Insert(3)
	if !s.Contains(3) {
		t.Error("should contain 3")
	}
	if s.Contains(5) || s.Contains(10) {
		t.Error("should not contain old values")
	}
}

func TestSetContainsOutOfBounds(t *testing.T) {
	s := NewSet(10)
	s.Insert(5)

	if s.Contains(10) {
		t.Error("Contains(10) should be false for capacity 10")
	}
	if s.Contains(100) {
		t.Error("Contains(100) should be false for capacity 10")
	}
}

func TestSetIter(t *testing.T) {
	s := NewSet(10)
	s.Insert(7)
	s.Insert(2)
	s.Insert(5)

	var collected []uint32
	s.Iter(func(v uint32) {
		collected = append(collected, v)
	})

	if len(collected) != 3 {
		t.Fatalf("expected 3 items, got %d", len(collected))
	}
	if collected[0] != 7 || collected[1] != 2 || collected[2] != 5 {
		t.Errorf("expected [7,2,5], got %v", collected)
	}
}

func TestSetIterEmpty(t *testing.T) {
	s := NewSet(10)

	called := false
	s.Iter(func(uint32) {
		called = true
	})
	if called {
		t.Error("Iter should not call function on empty set")
	}
}

func BenchmarkSetInsert(b *testing.B) {
	s := NewSet(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Clear()
		for j := uint32(0); j < 100; j++ {
			s.Insert(j)
		}
	}
}

func BenchmarkSetContains(b *testing.B) {
	s := NewSet(1000)
	for j := uint32(0); j < 100; j++ {
		s.Insert(j)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := uint32(0); j < 100; j++ {
			s.Contains(j)
		}
	}
}
