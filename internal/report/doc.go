// Package report renders a computed feature matrix for people: an HTML
// dashboard of cluster and outlier totals (go-echarts) and a PNG histogram
// of window counts per trip (gonum/plot).
package report
