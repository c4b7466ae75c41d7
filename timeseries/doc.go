// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for single time-indexed value
// sequences and the Frame type for ordered collections of named columns
// sharing one index, along with lagging, joining, and CSV loading.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.Named("price", values)
//
// # Lagging
//
// LagN shifts a series forward while keeping its index, padding the
// first rows with NaN:
//
//	lag1 := series.LagN(1) // NaN, 100, 102, 105, 103, 108
//
// LagFrame builds a block of lag columns in one call:
//
//	lags := timeseries.LagFrame(series, 3, "ar.L") // ar.L1, ar.L2, ar.L3
//
// # Frames
//
// Frames join on their time index and drop incomplete rows:
//
//	joined, _ := lags.Join(exogFrame)
//	trimmed := joined.DropNA() // loses the first max-lag rows
//	rows := trimmed.Values()   // row-major, columns in frame order
//
// Column order is insertion order and is preserved through Join and
// DropNA, which matters when rows are reshaped into vectors with an
// externally defined layout.
//
// # Loading from CSV
//
// Load a multi-column table:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.DateColumn = "date"
//	frame, err := timeseries.LoadFrameCSV("data.csv", []string{"price", "rate"}, opts)
//
// Empty or non-numeric cells become NaN and can be dropped with DropNA.
package timeseries
