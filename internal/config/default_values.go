package config

// DefaultCompressThreshold and DefaultHistoryMaxEntries mirror the values
// Default() returns, exposed as named constants for callers that need the
// number without constructing a full Config. No package in this repository
// references them at present.
const (
	DefaultCompressThreshold = 10
	DefaultHistoryMaxEntries = 1000
)
