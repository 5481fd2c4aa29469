// Package runner drives the external renderer over a list of fixtures.
//
// The main components are:
//   - Executor: launches the renderer for one fixture, and its environment
//     check for the report
//   - Compare: decides whether a fixture passed
//   - TestRunner: runs fixtures one after the other, filters their output
//     and streams results to the configured sinks
//
// Fixtures run sequentially and each renderer call blocks until the process
// exits, so results always appear in the order the fixtures were given.
package runner
