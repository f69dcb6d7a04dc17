package utils

import "testing"

// TestRandomRange 测试 Range 的取值范围
func TestRandomRange(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{"正区间", 6, 8.5},
		{"对称区间", -120, 120},
		{"反向区间", 1.0, -1.0},
		{"退化区间", 3, 3},
	}

	r := NewRandom(42)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.a, tt.b
			if lo > hi {
				lo, hi = hi, lo
			}
			for i := 0; i < 1000; i++ {
				v := r.Range(tt.a, tt.b)
				if v < lo || v > hi {
					t.Fatalf("Range(%v, %v) = %v, out of [%v, %v]", tt.a, tt.b, v, lo, hi)
				}
			}
		})
	}
}

// TestRandomIntRange 测试 IntRange 向下取整且不会取到上界
func TestRandomIntRange(t *testing.T) {
	r := NewRandom(7)
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		v := r.IntRange(10, 18)
		if v < 10 || v >= 18 {
			t.Fatalf("IntRange(10, 18) = %d, want [10, 18)", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("IntRange(10, 18) produced %d distinct values, want 8", len(seen))
	}
}

// TestRandomDeterministic 测试相同种子产生相同序列
func TestRandomDeterministic(t *testing.T) {
	a := NewRandom(2026)
	b := NewRandom(2026)
	for i := 0; i < 100; i++ {
		if x, y := a.Range(0, 360), b.Range(0, 360); x != y {
			t.Fatalf("step %d: got %v and %v from identical seeds", i, x, y)
		}
	}
}

func TestRandomChanceBounds(t *testing.T) {
	r := NewRandom(1)
	for i := 0; i < 1000; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}
