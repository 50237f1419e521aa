package metrics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []int
		yPred   []int
		want    []int
		mapping map[int]int
	}{
		{
			name:    "renamed clusters",
			yTrue:   []int{0, 0, 1, 1},
			yPred:   []int{5, 5, 9, 9},
			want:    []int{0, 0, 1, 1},
			mapping: map[int]int{0: 5, 1: 9},
		},
		{
			name:    "swap does not chain",
			yTrue:   []int{0, 0, 1, 1},
			yPred:   []int{1, 1, 0, 0},
			want:    []int{0, 0, 1, 1},
			mapping: map[int]int{0: 1, 1: 0},
		},
		{
			name:    "unclaimed cluster passes through",
			yTrue:   []int{0, 0, 1, 1, 1},
			yPred:   []int{3, 3, 4, 4, 8},
			want:    []int{0, 0, 1, 1, 8},
			mapping: map[int]int{0: 3, 1: 4},
		},
		{
			name:    "tie goes to smallest cluster",
			yTrue:   []int{0, 0},
			yPred:   []int{4, 2},
			want:    []int{4, 0},
			mapping: map[int]int{0: 2},
		},
		{
			name:    "claimed cluster skipped",
			yTrue:   []int{0, 0, 0, 1, 1, 1},
			yPred:   []int{6, 6, 6, 6, 6, 2},
			want:    []int{0, 0, 0, 0, 0, 1},
			mapping: map[int]int{0: 6, 1: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mapping, err := Reconcile(tt.yTrue, tt.yPred)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.mapping, mapping)
			assert.Len(t, got, len(tt.yPred))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	cases := [][2][]int{
		{{0, 0, 1, 1}, {0, 0, 1, 1}},
		{{0, 0, 1, 1, 2}, {0, 1, 1, 1, 2}},
		{{0, 0, 1, 1, 1}, {1, 1, 1, 0, 0}},
		{{2, 2, 0, 0, 1, 1}, {7, 7, 3, 5, 5, 5}},
	}

	for _, c := range cases {
		first, _, err := Reconcile(c[0], c[1])
		require.NoError(t, err)

		second, _, err := Reconcile(c[0], first)
		require.NoError(t, err)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("second Reconcile() changed labels (-first +second):\n%s", diff)
		}
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	yPred := []int{5, 5, 9, 9}
	_, _, err := Reconcile([]int{0, 0, 1, 1}, yPred)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5, 9, 9}, yPred)
}

func TestReconcile_NoUnclaimedCluster(t *testing.T) {
	_, _, err := Reconcile([]int{0, 0, 1, 1}, []int{7, 7, 7, 7})
	assert.ErrorIs(t, err, ErrNoUnclaimedCluster)
	assert.ErrorContains(t, err, "category 1")
}

func TestReconcile_LengthMismatch(t *testing.T) {
	_, _, err := Reconcile([]int{0, 1}, []int{0, 1, 1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMode(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
		ok     bool
	}{
		{"empty", nil, 0, false},
		{"single", []int{4}, 4, true},
		{"majority", []int{3, 1, 3}, 3, true},
		{"tie", []int{9, 2, 9, 2}, 2, true},
		{"negative", []int{-1, -1, 0}, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mode(tt.values)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{-2, 1, 3}, Unique([]int{3, 1, 3, -2, 1}))
	assert.Empty(t, Unique(nil))
}
