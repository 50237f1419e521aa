// clustereval fits clustering algorithms and scores them against ground truth.
//
// Usage:
//
//	clustereval evaluate   --config=<experiment.yaml> [--k=3]
//	clustereval silhouette --config=<experiment.yaml> [--ks=2,3,4] [-o silhouette.html]
//	clustereval elbow      --config=<experiment.yaml> [--ks=2,3,4,5] [-o elbow.html]
//	clustereval reports list --archive=file:///var/lib/clustereval
//	clustereval reports show <id|latest> --archive=file:///var/lib/clustereval
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
