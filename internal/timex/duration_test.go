package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"168h"`, want: 168 * time.Hour},
		{name: "nanoseconds", in: `1000000000`, want: time.Second},
		{name: "null", in: `null`, want: 0},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg struct {
		TTL     Duration `yaml:"ttl"`
		Timeout Duration `yaml:"timeout"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("ttl: 24h\ntimeout: 5000000000\n"), &cfg))
	assert.Equal(t, 24*time.Hour, cfg.TTL.Duration)
	assert.Equal(t, 5*time.Second, cfg.Timeout.Duration)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
