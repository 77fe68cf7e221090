// Package pipeline pairs every query record with every reference record,
// scans the pairs in parallel through a Scanner and hands the reports to a
// visit callback in input order (reference file, reference record, query).
//
// The only contract to implement is Scanner, so tests can swap in fakes.
package pipeline
