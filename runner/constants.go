package runner

// Renderer command line constants
const (
	// DefaultRenderer is the renderer command used when none is configured
	DefaultRenderer = "quarto"

	RenderCommand = "render"
	CheckCommand  = "check"

	OutputFlag   = "--output"
	StdoutTarget = "-"

	QuietFlag      = "--quiet"
	LogFormatFlag  = "--log-format"
	PlainLogFormat = "plain"
	LogFlag        = "--log"

	checkLogPattern = "fixture-runner-check-*.log"
)
