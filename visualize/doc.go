// Package visualize renders sweep results as standalone HTML pages with
// go-echarts.
package visualize
