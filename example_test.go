package clustereval_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/clustereval"
	"github.com/hupe1980/clustereval/cluster"
	"github.com/hupe1980/clustereval/metrics"
)

func ExampleEvaluator_Score() {
	ev := clustereval.New()

	X := [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}
	rec, err := ev.Score(context.Background(), []int{0, 0, 1, 1}, []int{5, 9, 5, 9}, X, cluster.KMeans)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("purity=%.2f\n", rec[metrics.KeyPurity])
	// Output: purity=0.50
}

func ExampleEvaluator_Evaluate() {
	ev := clustereval.New(clustereval.WithExperiment("toy"))

	X := [][]float64{{0, 0}, {0, 1}, {1, 0}, {20, 20}, {20, 21}, {21, 20}}
	y := []int{0, 0, 0, 1, 1, 1}
	res, err := ev.Evaluate(context.Background(), X, y, cluster.Config{
		Algorithm:  cluster.KMeans,
		NClusters:  2,
		RandomSeed: 1,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, key := range []string{metrics.KeyARI, metrics.KeyPurity, metrics.KeyFMeasure} {
		fmt.Printf("%s=%.2f\n", key, res.Report.Metrics[key])
	}
	// Output:
	// ars=1.00
	// purity=1.00
	// f-measure=1.00
}
