package bitset

import "testing"

func TestZeroOne(t *testing.T) {
	if !Zero().IsZero() {
		t.Error("Zero() should be the empty set")
	}
	one := One()
	if !one.Test(0) {
		t.Error("One() should have bit 0 set")
	}
	if one.PopCount() != 1 {
		t.Errorf("One() should have popcount 1, got %d", one.PopCount())
	}
}

func TestBitSetBit(t *testing.T) {
	b := Bit(5)
	for i := 0; i < MaxBits; i++ {
		want := i == 5
		if got := b.Test(i); got != want {
			t.Errorf("Test(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestSetBitPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range SetBit")
		}
	}()
	var c CS
	c.SetBit(MaxBits)
}

func TestAndOrXorNot(t *testing.T) {
	a := Bit(1).Or(Bit(3))
	b := Bit(3).Or(Bit(5))

	if got := a.And(b); got != Bit(3) {
		t.Errorf("And: got %v, want Bit(3)", got)
	}
	if got := a.Or(b); got != (Bit(1).Or(Bit(3)).Or(Bit(5))) {
		t.Errorf("Or: got %v, want {1,3,5}", got)
	}
	if got := a.Xor(b); got != (Bit(1).Or(Bit(5))) {
		t.Errorf("Xor: got %v, want {1,5}", got)
	}
	if a.Not().Test(1) {
		t.Error("Not() should clear bit 1")
	}
	if !a.Not().Test(2) {
		t.Error("Not() should set bit 2 (not present in a)")
	}
}

func TestShiftLeft(t *testing.T) {
	tests := []struct {
		name string
		in   CS
		n    int
		want CS
	}{
		{"zero shift", One(), 0, One()},
		{"small shift", One(), 4, Bit(4)},
		{"cross word boundary", Bit(63), 1, Bit(64)},
		{"shift by exactly 64", Bit(0), 64, Bit(64)},
		{"overflow past top", Bit(MaxBits - 1), 1, Zero()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.ShiftLeft(tc.n); got != tc.want {
				t.Errorf("ShiftLeft(%d) = %v, want %v", tc.n, got, tc.want)
			}
		})
	}
}

func TestLessTotalOrder(t *testing.T) {
	low := Bit(0)
	high := Bit(200)
	if !low.Less(high) {
		t.Error("Bit(0) should be less than Bit(200)")
	}
	if high.Less(low) {
		t.Error("Bit(200) should not be less than Bit(0)")
	}
	if low.Less(low) {
		t.Error("a value should never be less than itself")
	}
}

func TestPopCount(t *testing.T) {
	c := Bit(0).Or(Bit(63)).Or(Bit(64)).Or(Bit(255))
	if got := c.PopCount(); got != 4 {
		t.Errorf("PopCount() = %d, want 4", got)
	}
}

func TestHash128Deterministic(t *testing.T) {
	c := Bit(7).Or(Bit(140))
	hi1, lo1 := c.Hash128()
	hi2, lo2 := c.Hash128()
	if hi1 != hi2 || lo1 != lo2 {
		t.Error("Hash128 should be deterministic for the same value")
	}
	other := Bit(8)
	hi3, lo3 := other.Hash128()
	if hi1 == hi3 && lo1 == lo3 {
		t.Error("Hash128 of distinct values should not trivially collide")
	}
}

func TestSatisfies(t *testing.T) {
	posBits := Bit(1).Or(Bit(2))
	negBits := Bit(3)

	ok := Bit(1).Or(Bit(2)).Or(Bit(9))
	if !ok.Satisfies(posBits, negBits) {
		t.Error("expected ok to satisfy pos/neg")
	}

	missingPos := Bit(1)
	if missingPos.Satisfies(posBits, negBits) {
		t.Error("missing a positive bit should fail Satisfies")
	}

	hasNeg := Bit(1).Or(Bit(2)).Or(Bit(3))
	if hasNeg.Satisfies(posBits, negBits) {
		t.Error("containing a negative bit should fail Satisfies")
	}
}

func TestRequiredWidth(t *testing.T) {
	tests := []struct {
		icSize  int
		want    int
		wantErr bool
	}{
		{0, 64, false},
		{64, 64, false},
		{65, 128, false},
		{128, 128, false},
		{129, 256, false},
		{256, 256, false},
		{257, 0, true},
	}
	for _, tc := range tests {
		got, err := RequiredWidth(tc.icSize)
		if tc.wantErr {
			if err == nil {
				t.Errorf("RequiredWidth(%d): expected error", tc.icSize)
			}
			continue
		}
		if err != nil {
			t.Errorf("RequiredWidth(%d): unexpected error %v", tc.icSize, err)
		}
		if got != tc.want {
			t.Errorf("RequiredWidth(%d) = %d, want %d", tc.icSize, got, tc.want)
		}
	}
}
