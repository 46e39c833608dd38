package kmeans

import "testing"

func TestSqDist(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   int
	}{
		{"doc example", Point{2, 3}, Point{3, 5}, 5},
		{"same point", Point{7, 7}, Point{7, 7}, 0},
		{"symmetric", Point{3, 5}, Point{2, 3}, 5},
		{"negative coordinates", Point{-1, -1}, Point{2, 3}, 25},
		{"utm scale", Point{442151, 4729315}, Point{914041, 5071453}, 471890*471890 + 342138*342138},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SqDist(tt.p1, tt.p2); got != tt.want {
				t.Errorf("SqDist(%v, %v) = %d, want %d", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestSqDistOfFloat(t *testing.T) {
	got := SqDistOf(0.5, 0.0, 2.0, 2.0)
	if got != 6.25 {
		t.Errorf("SqDistOf float = %v, want 6.25", got)
	}
}
