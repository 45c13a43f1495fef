package op

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "origin/master", cfg.RemoteRef)
	assert.Equal(t, 9, cfg.BusinessStartHour)
	assert.Equal(t, 17, cfg.BusinessEndHour)
	assert.Equal(t, 50, cfg.DivergenceThreshold)
	assert.Equal(t, "gitfucktime-backup", cfg.BackupPrefix)
	assert.False(t, cfg.NoBackup)
	assert.False(t, cfg.SquelchWarnings)

	hours := cfg.Hours()
	assert.Equal(t, 9, hours.Start)
	assert.Equal(t, 17, hours.End)
}

func TestParseConfigYAML(t *testing.T) {
	input := []byte(`remote_ref: upstream/main
business_start_hour: 8
squelch_warnings: true
`)

	cfg, err := ParseConfigYAML(input)
	require.NoError(t, err)

	assert.Equal(t, "upstream/main", cfg.RemoteRef)
	assert.Equal(t, 8, cfg.BusinessStartHour)
	assert.True(t, cfg.SquelchWarnings)

	// keys the file leaves out keep the defaults
	assert.Equal(t, 17, cfg.BusinessEndHour)
	assert.Equal(t, 50, cfg.DivergenceThreshold)
	assert.Equal(t, "gitfucktime-backup", cfg.BackupPrefix)
}

func TestParseConfigYAML_Invalid(t *testing.T) {
	_, err := ParseConfigYAML([]byte("business_start_hour: [not an int]"))
	assert.Error(t, err)
}
