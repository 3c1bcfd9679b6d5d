package vertexpath

import (
	"errors"
	gomath "math"
	"math/rand"
	"sort"
	"testing"

	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
)

// randomPath builds a path with n unevenly spaced vertices.
func randomPath(r *rand.Rand, n int) *Path {
	points := make([]math.Vec3, n)
	var cursor math.Vec3
	for i := range points {
		points[i] = cursor
		cursor = cursor.Add(math.Vec3{X: 0.01 + r.Float64()*5, Y: r.Float64() - 0.5, Z: r.Float64()*2 - 1})
	}
	s := NewStore()
	if err := s.Commit(FromPolyline(points, pathmath.SpaceXYZ, false, IdentityFrame())); err != nil {
		panic(err)
	}
	p, _ := s.Path()
	return p
}

func pathFrom(t *testing.T, data CommitData) *Path {
	t.Helper()
	s := NewStore()
	mustCommit(t, s, data)
	p, _ := s.Path()
	return p
}

func TestLocateBracket_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		p := randomPath(r, 2+r.Intn(60))
		for k := 0; k < 200; k++ {
			tm := r.Float64()
			if k == 0 {
				tm = 0
			}
			b, err := p.LocateBracket(tm, Stop)
			if err != nil {
				t.Fatalf("LocateBracket(%v): %v", tm, err)
			}
			if b.Prev > b.Next || b.Next-b.Prev > 1 {
				t.Fatalf("bad bracket %+v for t=%v", b, tm)
			}
			if p.times[b.Prev] > tm || tm > p.times[b.Next] {
				t.Fatalf("t=%v not inside [%v, %v] (bracket %+v)", tm, p.times[b.Prev], p.times[b.Next], b)
			}
			if b.Percent < 0 || b.Percent > 1 {
				t.Fatalf("percent %v out of range", b.Percent)
			}
		}
	}
}

func TestLocateBracket_MatchesLinearSearch(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	p := randomPath(r, 40)
	for k := 0; k < 500; k++ {
		tm := r.Float64()
		b, _ := p.LocateBracket(tm, Stop)
		want := sort.SearchFloat64s(p.times, tm)
		if b.Next != want {
			t.Fatalf("t=%v: next=%d, linear search says %d", tm, b.Next, want)
		}
	}
}

func TestLocateBracket_NonUniformSpacing(t *testing.T) {
	data := linePath(5)
	data.Times = []float64{0, 0.05, 0.1, 0.9, 1}
	p := pathFrom(t, data)

	b, err := p.LocateBracket(0.5, Stop)
	if err != nil {
		t.Fatal(err)
	}
	if b.Prev != 2 || b.Next != 3 {
		t.Errorf("expected bracket (2,3), got (%d,%d)", b.Prev, b.Next)
	}
	if gomath.Abs(b.Percent-0.5) > 1e-12 {
		t.Errorf("expected percent 0.5, got %v", b.Percent)
	}
}

func TestLocateBracket_DuplicateTimesFavorSmallerNext(t *testing.T) {
	data := linePath(4)
	data.Times = []float64{0, 0.5, 0.5, 1}
	p := pathFrom(t, data)

	b, _ := p.LocateBracket(0.5, Stop)
	if b.Prev != 0 || b.Next != 1 {
		t.Errorf("expected bracket (0,1), got (%d,%d)", b.Prev, b.Next)
	}
	if b.Percent != 1 {
		t.Errorf("expected percent 1, got %v", b.Percent)
	}
}

func TestLocateBracket_NonFiniteTime(t *testing.T) {
	p := pathFrom(t, linePath(3))
	for _, eop := range []EndOfPath{Loop, Reverse, Stop} {
		for _, tm := range []float64{gomath.NaN(), gomath.Inf(1), gomath.Inf(-1)} {
			if _, err := p.LocateBracket(tm, eop); !errors.Is(err, ErrNonFiniteTime) {
				t.Errorf("%s t=%v: expected ErrNonFiniteTime, got %v", eop, tm, err)
			}
		}
	}
}

func TestEndOfPath_Normalize(t *testing.T) {
	tests := []struct {
		eop  EndOfPath
		in   float64
		want float64
	}{
		{Loop, 0.25, 0.25},
		{Loop, 1, 0},
		{Loop, 2.5, 0.5},
		{Loop, -0.25, 0.75},
		{Loop, -3, 0},
		{Reverse, 0.5, 0.5},
		{Reverse, 1.5, 0.5},
		{Reverse, 1, 1},
		{Reverse, 2.25, 0.25},
		{Reverse, -0.25, 0.25},
		{Stop, -4, 0},
		{Stop, 0.4, 0.4},
		{Stop, 7, 1},
	}
	for _, tt := range tests {
		got, err := tt.eop.Normalize(tt.in)
		if err != nil {
			t.Fatalf("%s(%v): %v", tt.eop, tt.in, err)
		}
		if gomath.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s(%v) = %v, want %v", tt.eop, tt.in, got, tt.want)
		}
	}
}

func TestPolicyBoundaries(t *testing.T) {
	p := pathFrom(t, linePath(6)) // times 0, .2, .4, .6, .8, 1

	same := func(a, b float64, eop EndOfPath) {
		t.Helper()
		ba, _ := p.LocateBracket(a, eop)
		bb, _ := p.LocateBracket(b, eop)
		if ba.Prev != bb.Prev || ba.Next != bb.Next || gomath.Abs(ba.Percent-bb.Percent) > 1e-9 {
			t.Errorf("%s: t=%v gives %+v but t=%v gives %+v", eop, a, ba, b, bb)
		}
		pa, _ := p.PointAtTime(a, eop)
		pb, _ := p.PointAtTime(b, eop)
		if !pa.ApproxEqual(pb, 1e-9) {
			t.Errorf("%s: points differ %v vs %v", eop, pa, pb)
		}
	}

	for _, tm := range []float64{0.1, 0.33, 0.5, 0.77, 0.95} {
		same(tm, tm+1, Loop)
		same(tm, tm-1, Loop)
		same(tm, tm+3, Loop)
	}
	for _, tm := range []float64{1.0001, 1.5, 42} {
		same(tm, 1, Stop)
	}
	same(1.5, 0.5, Reverse)
	same(-0.3, 0.3, Reverse)
}

func TestSampleExactness(t *testing.T) {
	frame := Frame{
		Position: math.Vec3{X: 4, Y: -1, Z: 2},
		Rotation: math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 1, Z: 0}.Normalize(), 0.9),
		Scale:    math.Vec3{X: 2, Y: 0.5, Z: 3},
	}
	r := rand.New(rand.NewSource(3))
	base := randomPath(r, 25).CommitData()
	base.Frame = frame

	for _, space := range []pathmath.Space{pathmath.SpaceXYZ, pathmath.SpaceXY, pathmath.SpaceXZ} {
		data := base
		data.Space = space
		p := pathFrom(t, data)

		for k := 0; k < p.NumPoints(); k++ {
			got, err := p.PointAtTime(p.times[k], Stop)
			if err != nil {
				t.Fatal(err)
			}
			want := frame.TransformPoint(p.localPoints[k], space)
			if !got.ApproxEqual(want, 1e-9) {
				t.Errorf("%s sample %d: got %v, want %v", space, k, got, want)
			}
			if !got.ApproxEqual(p.Point(k), 1e-9) {
				t.Errorf("%s sample %d disagrees with Point: %v vs %v", space, k, got, p.Point(k))
			}
		}
	}
}

func TestPointAtTime_Interpolates(t *testing.T) {
	p := pathFrom(t, straightPath())

	got, err := p.PointAtTime(0.25, Stop)
	if err != nil {
		t.Fatal(err)
	}
	if !got.ApproxEqual(math.Vec3{X: 2.5}, 1e-12) {
		t.Errorf("expected (2.5,0,0), got %v", got)
	}

	got, _ = p.PointAtTime(1.25, Loop)
	if !got.ApproxEqual(math.Vec3{X: 2.5}, 1e-9) {
		t.Errorf("loop: expected (2.5,0,0), got %v", got)
	}

	got, _ = p.PointAtTime(1.25, Reverse)
	if !got.ApproxEqual(math.Vec3{X: 7.5}, 1e-9) {
		t.Errorf("reverse: expected (7.5,0,0), got %v", got)
	}
}

func TestDirectionNormalRotation(t *testing.T) {
	frame := IdentityFrame()
	frame.Rotation = math.QuatFromAxisAngle(math.Vec3Up, gomath.Pi/2)
	data := straightPath()
	data.Frame = frame
	p := pathFrom(t, data)

	dir, _ := p.DirectionAtTime(0.5, Loop)
	if !dir.ApproxEqual(math.Vec3{Z: -1}, 1e-9) {
		t.Errorf("direction: expected (0,0,-1), got %v", dir)
	}
	normal, _ := p.NormalAtTime(0.5, Loop)
	if !normal.ApproxEqual(math.Vec3Up, 1e-9) {
		t.Errorf("normal: expected +Y, got %v", normal)
	}

	rot, _ := p.RotationAtTime(0.5, Loop)
	if f := rot.Rotate(math.Vec3Forward); !f.ApproxEqual(dir, 1e-9) {
		t.Errorf("rotation forward: got %v, want %v", f, dir)
	}
	if u := rot.Rotate(math.Vec3Up); !u.ApproxEqual(normal, 1e-9) {
		t.Errorf("rotation up: got %v, want %v", u, normal)
	}
}

func TestDistanceQueries(t *testing.T) {
	p := pathFrom(t, straightPath())

	got, err := p.PointAtDistance(4, Stop)
	if err != nil {
		t.Fatal(err)
	}
	if !got.ApproxEqual(math.Vec3{X: 4}, 1e-12) {
		t.Errorf("PointAtDistance(4): got %v", got)
	}

	got, _ = p.PointAtDistance(13, Loop)
	if !got.ApproxEqual(math.Vec3{X: 3}, 1e-9) {
		t.Errorf("PointAtDistance(13, loop): got %v", got)
	}

	dir, _ := p.DirectionAtDistance(5, Stop)
	if !dir.ApproxEqual(math.Vec3{X: 1}, 1e-12) {
		t.Errorf("DirectionAtDistance: got %v", dir)
	}
	normal, _ := p.NormalAtDistance(5, Stop)
	if !normal.ApproxEqual(math.Vec3Up, 1e-12) {
		t.Errorf("NormalAtDistance: got %v", normal)
	}
	rot, _ := p.RotationAtDistance(5, Stop)
	if f := rot.Rotate(math.Vec3Forward); !f.ApproxEqual(math.Vec3{X: 1}, 1e-9) {
		t.Errorf("RotationAtDistance forward: got %v", f)
	}
}

func TestDistanceQueries_DegenerateLength(t *testing.T) {
	data := FromPolyline([]math.Vec3{{X: 1}, {X: 1}}, pathmath.SpaceXYZ, false, IdentityFrame())
	s := NewStore()
	mustCommit(t, s, data)

	if _, err := s.PointAtDistance(2, Loop); !errors.Is(err, ErrDegenerateLength) {
		t.Errorf("PointAtDistance: expected ErrDegenerateLength, got %v", err)
	}
	if _, err := s.DirectionAtDistance(2, Loop); !errors.Is(err, ErrDegenerateLength) {
		t.Errorf("DirectionAtDistance: expected ErrDegenerateLength, got %v", err)
	}
	if _, err := s.NormalAtDistance(2, Loop); !errors.Is(err, ErrDegenerateLength) {
		t.Errorf("NormalAtDistance: expected ErrDegenerateLength, got %v", err)
	}
	if _, err := s.RotationAtDistance(2, Loop); !errors.Is(err, ErrDegenerateLength) {
		t.Errorf("RotationAtDistance: expected ErrDegenerateLength, got %v", err)
	}

	// Time based queries still work on a zero-length path.
	if p, err := s.PointAtTime(0.5, Loop); err != nil || p != (math.Vec3{X: 1}) {
		t.Errorf("PointAtTime on zero-length path: %v, %v", p, err)
	}
}

func TestDistanceQueries_NegativeLength(t *testing.T) {
	data := FromPolyline([]math.Vec3{{}, {X: 10}}, pathmath.SpaceXYZ, false, IdentityFrame())
	data.Length = -10
	p := pathFrom(t, data)

	if _, err := p.TimeAtDistance(2.5); !errors.Is(err, ErrDegenerateLength) {
		t.Errorf("TimeAtDistance: expected ErrDegenerateLength, got %v", err)
	}
	if _, err := p.PointAtDistance(2.5, Stop); !errors.Is(err, ErrDegenerateLength) {
		t.Errorf("PointAtDistance: expected ErrDegenerateLength, got %v", err)
	}
}

func TestLocateBracket_ZeroValuePath(t *testing.T) {
	var p Path

	if _, err := p.LocateBracket(0.5, Stop); !errors.Is(err, ErrUninitialized) {
		t.Errorf("LocateBracket: expected ErrUninitialized, got %v", err)
	}
	if _, err := p.PointAtTime(0.5, Loop); !errors.Is(err, ErrUninitialized) {
		t.Errorf("PointAtTime: expected ErrUninitialized, got %v", err)
	}
	if _, err := p.RotationAtTime(1, Reverse); !errors.Is(err, ErrUninitialized) {
		t.Errorf("RotationAtTime: expected ErrUninitialized, got %v", err)
	}
}

func TestStore_DelegatesQueries(t *testing.T) {
	s := NewStore()
	mustCommit(t, s, straightPath())

	if b, err := s.LocateBracket(0.5, Loop); err != nil || b.Prev != 0 || b.Next != 1 {
		t.Errorf("LocateBracket: %+v, %v", b, err)
	}
	if p, err := s.PointAtTime(0.5, Loop); err != nil || !p.ApproxEqual(math.Vec3{X: 5}, 1e-12) {
		t.Errorf("PointAtTime: %v, %v", p, err)
	}
	if d, err := s.DirectionAtTime(0.5, Loop); err != nil || !d.ApproxEqual(math.Vec3{X: 1}, 1e-12) {
		t.Errorf("DirectionAtTime: %v, %v", d, err)
	}
	if n, err := s.NormalAtTime(0.5, Loop); err != nil || !n.ApproxEqual(math.Vec3Up, 1e-12) {
		t.Errorf("NormalAtTime: %v, %v", n, err)
	}
	if _, err := s.RotationAtTime(0.5, Loop); err != nil {
		t.Errorf("RotationAtTime: %v", err)
	}
	if tg, err := s.Tangent(0); err != nil || tg != (math.Vec3{X: 1}) {
		t.Errorf("Tangent: %v, %v", tg, err)
	}
	if n, err := s.Normal(1); err != nil || n != math.Vec3Up {
		t.Errorf("Normal: %v, %v", n, err)
	}
}
