// Package reporting implements the result sinks of the fixture runner: the
// streamed console lines, the optional results table and the markdown job
// summary written for CI.
package reporting
