package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name           string
		exitCode       int
		actualOutput   string
		expectedOutput string
		actualError    string
		expectedError  string
		want           Verdict
	}{
		{
			name:           "everything matches",
			actualOutput:   "doc\n",
			expectedOutput: "doc\n",
			want:           Verdict{ExitCodeOK: true, OutputOK: true, ErrorOK: true},
		},
		{
			name:           "non zero exit fails even when text matches",
			exitCode:       1,
			actualOutput:   "doc\n",
			expectedOutput: "doc\n",
			want:           Verdict{ExitCodeOK: false, OutputOK: true, ErrorOK: true},
		},
		{
			name:     "negative exit code from a signal fails",
			exitCode: -1,
			want:     Verdict{ExitCodeOK: false, OutputOK: true, ErrorOK: true},
		},
		{
			name:           "output mismatch",
			actualOutput:   "doc",
			expectedOutput: "doc\n",
			want:           Verdict{ExitCodeOK: true, OutputOK: false, ErrorOK: true},
		},
		{
			name:          "unexpected warning",
			actualError:   "WARNING\n",
			expectedError: "",
			want:          Verdict{ExitCodeOK: true, OutputOK: true, ErrorOK: false},
		},
		{
			name:           "everything wrong",
			exitCode:       2,
			actualOutput:   "a",
			expectedOutput: "b",
			actualError:    "c",
			expectedError:  "d",
			want:           Verdict{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.exitCode, tt.actualOutput, tt.expectedOutput, tt.actualError, tt.expectedError)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.ExitCodeOK && tt.want.OutputOK && tt.want.ErrorOK, got.Success())
		})
	}
}
