// Package config loads YAML experiment files.
//
//	name: iris
//	dataset:
//	  path: iris.csv
//	  label: species
//	algorithm: kmeans
//	k: 3
//	archive:
//	  url: file:///var/lib/clustereval
//
// Unset fields take the defaults documented on Experiment.
package config
