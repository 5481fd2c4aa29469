package exitcodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFailures(t *testing.T) {
	tests := []struct {
		name   string
		failed int
		want   int
	}{
		{name: "no failures", failed: 0, want: Success},
		{name: "negative is treated as none", failed: -3, want: Success},
		{name: "one failure", failed: 1, want: 1},
		{name: "several failures", failed: 19, want: 19},
		{name: "at the limit", failed: MaxFailures, want: MaxFailures},
		{name: "clamped above the limit", failed: 1000, want: MaxFailures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromFailures(tt.failed))
		})
	}

	assert.NotEqual(t, RuntimeErr, FromFailures(1000), "fail counts must never collide with the runtime error code")
}
