package op

import (
	"github.com/goccy/go-yaml"

	"github.com/G0razd/gitfucktime"
)

// Config holds the knobs of the operation layer. Nothing here is ambient
// process state: the warning squelch in particular is a value, not an
// environment toggle.
type Config struct {
	// DbPath locates the bbolt operation log. Empty means a temporary
	// file, which loses the revert history when the process exits.
	DbPath string `yaml:"db_path"`

	// RemoteRef is the reference unpushed selection and divergence checks
	// compare against.
	RemoteRef string `yaml:"remote_ref"`

	BusinessStartHour int `yaml:"business_start_hour"`
	BusinessEndHour   int `yaml:"business_end_hour"`

	// DivergenceThreshold is the ahead/behind count above which the caller
	// should ask for confirmation.
	DivergenceThreshold int `yaml:"divergence_threshold"`

	// BackupPrefix names the backup branches created before a rewrite.
	BackupPrefix string `yaml:"backup_prefix"`

	// NoBackup skips the backup branch entirely.
	NoBackup bool `yaml:"no_backup"`

	// SquelchWarnings drops the non-fatal warnings of the operation layer.
	SquelchWarnings bool `yaml:"squelch_warnings"`
}

func DefaultConfig() *Config {
	return &Config{
		RemoteRef:           "origin/master",
		BusinessStartHour:   gitfucktime.DefaultBusinessHours.Start,
		BusinessEndHour:     gitfucktime.DefaultBusinessHours.End,
		DivergenceThreshold: 50,
		BackupPrefix:        "gitfucktime-backup",
	}
}

// Hours returns the configured business hours.
func (c *Config) Hours() gitfucktime.BusinessHours {
	return gitfucktime.BusinessHours{Start: c.BusinessStartHour, End: c.BusinessEndHour}
}

// ParseConfigYAML parses a config file, with [DefaultConfig] filling the
// keys the file leaves out.
func ParseConfigYAML(file []byte) (*Config, error) {
	result := DefaultConfig()

	if err := yaml.Unmarshal(file, result); err != nil {
		return nil, err
	}

	return result, nil
}
