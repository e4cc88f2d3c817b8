package level

import "testing"

func TestNewCosts(t *testing.T) {
	c := NewCosts([5]uint16{1, 12, 6, 1, 1})
	if c.Alpha != 1 || c.Question != 12 || c.Star != 6 || c.Concat != 1 || c.Alternation != 1 {
		t.Errorf("unexpected Costs: %+v", c)
	}
}

func TestPartitionerStartEnd(t *testing.T) {
	p := New(10)
	p.SetStart(0, Question, 2)
	p.SetEnd(0, Question, 5)

	if got := p.Start(0, Question); got != 2 {
		t.Errorf("Start(0, Question) = %d, want 2", got)
	}
	if got := p.End(0, Question); got != 5 {
		t.Errorf("End(0, Question) = %d, want 5", got)
	}
}

func TestPartitionerInterval(t *testing.T) {
	p := New(10)
	p.SetStart(3, Question, 10)
	p.SetEnd(3, Or, 20)

	start, end := p.Interval(3, Question, Or)
	if start != 10 || end != 20 {
		t.Errorf("Interval = (%d, %d), want (10, 20)", start, end)
	}
}

func TestPartitionerMarkFound(t *testing.T) {
	p := New(10)
	p.MarkFound(2, Star)
	if got := p.End(2, Star); got != openEnd {
		t.Errorf("End after MarkFound = %d, want openEnd", got)
	}
}

func TestIndexToLevel(t *testing.T) {
	p := New(10)
	p.SetStart(0, Question, 0)
	p.SetEnd(0, Question, 3)
	p.SetStart(0, Star, 3)
	p.SetEnd(0, Star, 5)
	p.SetStart(1, Question, 5)
	p.SetEnd(1, Question, 8)

	tests := []struct {
		idx      int
		wantLvl  int
		wantOp   Operation
	}{
		{1, 0, Question},
		{4, 0, Star},
		{6, 1, Question},
	}
	for _, tc := range tests {
		lvl, op := p.IndexToLevel(tc.idx)
		if lvl != tc.wantLvl || op != tc.wantOp {
			t.Errorf("IndexToLevel(%d) = (%d, %v), want (%d, %v)", tc.idx, lvl, op, tc.wantLvl, tc.wantOp)
		}
	}
}

func TestOperationString(t *testing.T) {
	cases := map[Operation]string{
		Question: "?",
		Star:     "*",
		Concat:   "concat",
		Or:       "|",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", op, got, want)
		}
	}
}
