package config

// VesselConfig identifies the tracked vessel
type VesselConfig struct {
	MMSI string `yaml:"mmsi" validate:"required,numeric"`
	Name string `yaml:"name"`
}

// MarineTrafficConfig contains the public AIS detail-page lookup settings
type MarineTrafficConfig struct {
	// VesselURL is a template with a single %s for the MMSI
	VesselURL string `yaml:"vesselURL" validate:"omitempty,contains=%s"`
}

// MapShareConfig contains the route-history feed settings
type MapShareConfig struct {
	ShareID string `yaml:"shareID"`
	// FeedURL is a template with a single %s for the share identifier
	FeedURL string `yaml:"feedURL" validate:"omitempty,contains=%s"`
}

// SMTPConfig contains credentials for the outbound mail transport
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"gte=0"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// EmailConfig contains the notification addressing
type EmailConfig struct {
	From string     `yaml:"from" validate:"omitempty,email"`
	To   string     `yaml:"to" validate:"omitempty,email"`
	SMTP SMTPConfig `yaml:"smtp"`
}

// HTTPConfig contains transport-level safeguards for outbound calls
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds" validate:"gte=0"`
}

// Config is the root configuration structure
type Config struct {
	Vessel        VesselConfig        `yaml:"vessel" validate:"required"`
	MarineTraffic MarineTrafficConfig `yaml:"marinetraffic"`
	MapShare      MapShareConfig      `yaml:"mapshare"`
	Email         EmailConfig         `yaml:"email"`
	HTTP          HTTPConfig          `yaml:"http"`
}
