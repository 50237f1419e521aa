// Package dataset loads feature matrices and ground-truth labels from CSV.
//
// The first record is the header. Feature columns are parsed as floats unless
// listed as categorical, in which case they are integer-coded in first-seen
// order. The label column is encoded the same way.
//
//	ds, err := dataset.Load("mushrooms.csv",
//	    dataset.WithLabelColumn("class"),
//	    dataset.WithCategorical("cap-shape", "odor"),
//	)
//
// Project2D reduces a matrix to its first two principal components for
// scatter plots.
package dataset
