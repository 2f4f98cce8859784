// Package config loads motorwatch configuration through viper. Every
// key has a default, so the program runs with no config file at all;
// a motorwatch.yaml in the working directory overrides them.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/arlo/motorwatch/internal/sensor"
)

// Config holds all tunables of the monitor.
type Config struct {
	Sensor struct {
		BaseTemp  float64 `mapstructure:"base_temp"`
		TempRate  float64 `mapstructure:"temp_rate"`
		TempNoise float64 `mapstructure:"temp_noise"`
		BaseVib   float64 `mapstructure:"base_vibration"`
		VibRate   float64 `mapstructure:"vibration_rate"`
		VibNoise  float64 `mapstructure:"vibration_noise"`
	} `mapstructure:"sensor"`

	Limits struct {
		CriticalTemp      float64 `mapstructure:"critical_temp"`
		CriticalVibration float64 `mapstructure:"critical_vibration"`
		WarningRatio      float64 `mapstructure:"warning_ratio"`
	} `mapstructure:"limits"`

	Monitor struct {
		Interval    time.Duration `mapstructure:"interval"`
		HistorySize int           `mapstructure:"history_size"`
	} `mapstructure:"monitor"`

	Log struct {
		DataFile string `mapstructure:"data_file"`
		OpsFile  string `mapstructure:"ops_file"`
	} `mapstructure:"log"`
}

// Load reads motorwatch.yaml from path (or returns defaults when the
// file is absent).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("motorwatch")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sensor.base_temp", 40.0)
	v.SetDefault("sensor.temp_rate", 3.0)
	v.SetDefault("sensor.temp_noise", 2.0)
	v.SetDefault("sensor.base_vibration", 10.0)
	v.SetDefault("sensor.vibration_rate", 1.5)
	v.SetDefault("sensor.vibration_noise", 1.0)

	v.SetDefault("limits.critical_temp", 100.0)
	v.SetDefault("limits.critical_vibration", 50.0)
	v.SetDefault("limits.warning_ratio", 0.8)

	v.SetDefault("monitor.interval", "1s")
	v.SetDefault("monitor.history_size", 600)

	v.SetDefault("log.data_file", "machine_logs.csv")
	v.SetDefault("log.ops_file", "motorwatch.log")
}

// Degradation maps the sensor section onto the simulator's trend.
func (c *Config) Degradation() sensor.Degradation {
	return sensor.Degradation{
		BaseTemp:  c.Sensor.BaseTemp,
		TempRate:  c.Sensor.TempRate,
		TempNoise: c.Sensor.TempNoise,
		BaseVib:   c.Sensor.BaseVib,
		VibRate:   c.Sensor.VibRate,
		VibNoise:  c.Sensor.VibNoise,
	}
}

// SensorLimits maps the limits section onto classification limits.
func (c *Config) SensorLimits() sensor.Limits {
	return sensor.Limits{
		CriticalTemp:      c.Limits.CriticalTemp,
		CriticalVibration: c.Limits.CriticalVibration,
		WarningRatio:      c.Limits.WarningRatio,
	}
}
