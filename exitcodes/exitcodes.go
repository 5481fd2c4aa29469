// Package exitcodes defines the exit codes used by fixture-runner.
package exitcodes

// Exit code constants used by fixture-runner.
//
// * Success (0): every fixture passed
// * 1..MaxFailures: the number of failed fixtures
// * RuntimeErr (255): the run itself could not complete (bad config,
//   missing golden file, renderer not startable)
const (
	Success     = 0   // All fixtures pass
	MaxFailures = 254 // Largest fail count that fits an exit status
	RuntimeErr  = 255 // Runtime errors
)

// FromFailures maps a fail count to a process exit code.
func FromFailures(failed int) int {
	if failed <= 0 {
		return Success
	}
	if failed > MaxFailures {
		return MaxFailures
	}
	return failed
}
