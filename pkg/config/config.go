package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Station StationConfig `yaml:"station"`
	ADS1115 ADS1115Config `yaml:"ads1115"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Metrics MetricsConfig `yaml:"metrics"`
	Mock    MockConfig    `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// StationConfig contains measurement loop parameters.
type StationConfig struct {
	Interval   time.Duration `yaml:"interval"`   // Time between reports
	Oversample int           `yaml:"oversample"` // Reads averaged per sample (0 or 1 = single read)
	Precision  int           `yaml:"precision"`  // Decimals printed per value
}

// ADS1115Config contains the I²C ADC configuration used with -local.
type ADS1115Config struct {
	Bus        string  `yaml:"bus"`         // I²C bus name, empty for the first one
	Address    uint16  `yaml:"address"`     // I²C address
	MaxVoltage float64 `yaml:"max_voltage"` // Full scale range (V)
	RateHz     int     `yaml:"rate_hz"`     // Samples per second
}

// MQTTConfig contains the MQTT publisher configuration. An empty broker
// disables publishing.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	QoS      byte   `yaml:"qos"`
}

// MetricsConfig contains the Prometheus endpoint configuration. An empty
// address disables the endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	Interval   time.Duration `yaml:"interval"`    // Time between readings
	Period     time.Duration `yaml:"period"`      // Period of the simulated weather cycle
	NoiseLevel float64       `yaml:"noise_level"` // Noise level (V)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0", // "COM3" on Windows
			BaudRate: 9600,
		},
		Station: StationConfig{
			Interval:   2000 * time.Millisecond,
			Oversample: 1,
			Precision:  2,
		},
		ADS1115: ADS1115Config{
			Bus:        "",
			Address:    0x48,
			MaxVoltage: 6.144,
			RateHz:     128,
		},
		MQTT: MQTTConfig{
			Broker:   "",
			ClientID: "gowx",
			Topic:    "gowx/reading",
			QoS:      0,
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
		Mock: MockConfig{
			Interval:   2000 * time.Millisecond,
			Period:     10 * time.Minute,
			NoiseLevel: 0.02,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Station.Interval <= 0 {
		c.Station.Interval = def.Station.Interval
	}
	if c.Station.Oversample <= 0 {
		c.Station.Oversample = def.Station.Oversample
	}
	if c.Station.Precision < 0 {
		c.Station.Precision = def.Station.Precision
	}

	if c.ADS1115.Address == 0 {
		c.ADS1115.Address = def.ADS1115.Address
	}
	if c.ADS1115.MaxVoltage == 0 {
		c.ADS1115.MaxVoltage = def.ADS1115.MaxVoltage
	}
	if c.ADS1115.RateHz == 0 {
		c.ADS1115.RateHz = def.ADS1115.RateHz
	}

	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = def.MQTT.ClientID
	}
	if c.MQTT.Topic == "" {
		c.MQTT.Topic = def.MQTT.Topic
	}

	if c.Mock.Interval == 0 {
		c.Mock.Interval = def.Mock.Interval
	}
	if c.Mock.Period == 0 {
		c.Mock.Period = def.Mock.Period
	}
}
