package config

import "time"

type Config struct {
	Data       DataConfig      `mapstructure:"data"`
	Server     ServerConfig    `mapstructure:"server"`
	Persist    PersistConfig   `mapstructure:"persist"`
	Limits     LimitsConfig    `mapstructure:"limits"`
	Interbank  InterbankConfig `mapstructure:"interbank"`
	ConfigPath string          `mapstructure:"-"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type PersistConfig struct {
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// LimitsConfig carries money bounds as strings so they survive the trip
// through YAML without floating-point drift.
type LimitsConfig struct {
	TransferMax string `mapstructure:"transfer_max"`
	CheckinMin  string `mapstructure:"checkin_min"`
	CheckinMax  string `mapstructure:"checkin_max"`
}

type InterbankConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Delay   time.Duration `mapstructure:"delay"`
}

func NewDefault() *Config {
	return &Config{
		Data:   DataConfig{Path: ""},
		Server: ServerConfig{Addr: ":8642"},
		Persist: PersistConfig{
			FlushInterval: 5 * time.Minute,
		},
		Limits: LimitsConfig{
			TransferMax: "50000",
			CheckinMin:  "100.00",
			CheckinMax:  "500.00",
		},
		Interbank: InterbankConfig{
			Timeout: 10 * time.Second,
			Delay:   500 * time.Millisecond,
		},
	}
}
