package docpdf

import (
	"runtime"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)
	auto := gomaxprocs
	if auto < MinWorkers {
		auto = MinWorkers
	}
	if auto > MaxWorkers {
		auto = MaxWorkers
	}

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit above max is honoured",
			workers: MaxWorkers + 10,
			want:    MaxWorkers + 10,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    auto,
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    auto,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveWorkers(tt.workers); got != tt.want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d (GOMAXPROCS=%d)", tt.workers, got, tt.want, gomaxprocs)
			}
		})
	}
}
