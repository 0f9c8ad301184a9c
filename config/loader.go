package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultVesselURL is the public AIS vessel-detail page, %s = MMSI.
	DefaultVesselURL = "https://www.marinetraffic.com/en/ais/details/ships/mmsi:%s"

	// DefaultFeedURL is the MapShare KML route feed, %s = share identifier.
	DefaultFeedURL = "https://share.garmin.com/Feed/Share/%s"

	DefaultTimeoutSeconds = 30
	DefaultSMTPPort       = 587
)

// Load reads and validates the configuration from the given yaml file.
// SMTP credentials may be overridden by the SMTP_USER and SMTP_PASSWORD
// environment variables so they can stay out of the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	if user := os.Getenv("SMTP_USER"); user != "" {
		cfg.Email.SMTP.User = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		cfg.Email.SMTP.Password = pass
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MarineTraffic.VesselURL == "" {
		c.MarineTraffic.VesselURL = DefaultVesselURL
	}
	if c.MapShare.FeedURL == "" {
		c.MapShare.FeedURL = DefaultFeedURL
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Email.SMTP.Port == 0 {
		c.Email.SMTP.Port = DefaultSMTPPort
	}
}
