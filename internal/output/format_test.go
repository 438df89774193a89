package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{input: "yaml", want: FormatYAML},
		{input: "YML", want: FormatYAML},
		{input: "json", want: FormatJSON},
		{input: " Text ", want: FormatText},
		{input: "", want: FormatText},
		{input: "table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputFormat_Structured(t *testing.T) {
	assert.True(t, FormatJSON.Structured())
	assert.True(t, FormatYAML.Structured())
	assert.False(t, FormatText.Structured())
	assert.Equal(t, []string{"text", "yaml", "json"}, ValidFormats())
}
