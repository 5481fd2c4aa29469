// Package filter removes renderer boilerplate from captured output so it can
// be compared byte for byte with golden files.
//
// Both filters are line classifiers: they scan the input once, move through a
// small set of states on recognised marker lines and keep only the lines seen
// in the terminal state. When a marker is missing the input is returned
// untouched together with a sentinel error, so callers can report the problem
// instead of comparing half-trimmed text.
package filter
