package search

// Scorer compares a query word with a field segment and returns a value in [0, 1].
type Scorer func(a, b string) float64
