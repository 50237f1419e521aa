package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Blobs generates perCluster gaussian points around each center.
// It returns the rows and the index of the generating center for each row.
// Rows are grouped by center.
func (r *RNG) Blobs(centers [][]float64, perCluster int, spread float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	X := make([][]float64, 0, len(centers)*perCluster)
	y := make([]int, 0, len(centers)*perCluster)
	for c, center := range centers {
		for range perCluster {
			row := make([]float64, len(center))
			for d, v := range center {
				row[d] = v + r.rand.NormFloat64()*spread
			}
			X = append(X, row)
			y = append(y, c)
		}
	}
	return X, y
}

// CategoricalBlobs generates integer-coded rows with dim attributes for
// clusters groups. Every attribute of group c takes the value c, and is
// replaced by a random value from a larger alphabet with probability noise.
func (r *RNG) CategoricalBlobs(clusters, perCluster, dim int, noise float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	X := make([][]float64, 0, clusters*perCluster)
	y := make([]int, 0, clusters*perCluster)
	for c := range clusters {
		for range perCluster {
			row := make([]float64, dim)
			for d := range row {
				row[d] = float64(c)
				if r.rand.Float64() < noise {
					row[d] = float64(clusters + r.rand.Intn(clusters+1))
				}
			}
			X = append(X, row)
			y = append(y, c)
		}
	}
	return X, y
}

// Shuffle permutes rows and labels together.
func (r *RNG) Shuffle(X [][]float64, y []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rand.Shuffle(len(X), func(i, j int) {
		X[i], X[j] = X[j], X[i]
		y[i], y[j] = y[j], y[i]
	})
}
