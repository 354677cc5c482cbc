// Package config loads and saves run configurations. The yaml layout
// mirrors the four immutable spec groups plus the two run scalars.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/launchsim/internal/vehicle"
)

const (
	DefaultDt      = 0.01
	DefaultRuntime = 20.0
)

type Config struct {
	Vehicle VehicleConfig `yaml:"vehicle"`
	Motor   MotorConfig   `yaml:"motor"`
	Battery BatteryConfig `yaml:"battery"`
	Tire    TireConfig    `yaml:"tire"`
	Dt      float64       `yaml:"dt"`
	Runtime float64       `yaml:"runtime"`
}

type VehicleConfig struct {
	A           float64 `yaml:"a"`
	B           float64 `yaml:"b"`
	Mass        float64 `yaml:"mass"`
	CGHeight    float64 `yaml:"cg_height"`
	DragCoeff   float64 `yaml:"cd"`
	FrontalArea float64 `yaml:"frontal_area"`
}

type MotorConfig struct {
	Kv         float64 `yaml:"kv"`
	Efficiency float64 `yaml:"efficiency"`
}

type BatteryConfig struct {
	CapacityAh float64 `yaml:"capacity_ah"`
	CRate      float64 `yaml:"c_rate"`
	Voltage    float64 `yaml:"voltage"`
	BurstTime  float64 `yaml:"burst_time"`
}

type TireConfig struct {
	Radius    float64 `yaml:"radius"`
	Inertia   float64 `yaml:"inertia"`
	Stiffness float64 `yaml:"stiffness"`
	Shape     float64 `yaml:"shape"`
	Peak      float64 `yaml:"peak"`
	Curvature float64 `yaml:"curvature"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Specs builds the four immutable spec values, validating physicality.
func (c *Config) Specs() (vehicle.Vehicle, vehicle.Motor, vehicle.Battery, vehicle.Tire, error) {
	veh, err := vehicle.NewVehicle(c.Vehicle.A, c.Vehicle.B, c.Vehicle.Mass, c.Vehicle.CGHeight, c.Vehicle.DragCoeff, c.Vehicle.FrontalArea)
	if err != nil {
		return vehicle.Vehicle{}, vehicle.Motor{}, vehicle.Battery{}, vehicle.Tire{}, err
	}
	mot, err := vehicle.NewMotor(c.Motor.Kv, c.Motor.Efficiency)
	if err != nil {
		return vehicle.Vehicle{}, vehicle.Motor{}, vehicle.Battery{}, vehicle.Tire{}, err
	}
	bat, err := vehicle.NewBattery(c.Battery.CapacityAh, c.Battery.CRate, c.Battery.Voltage, c.Battery.BurstTime)
	if err != nil {
		return vehicle.Vehicle{}, vehicle.Motor{}, vehicle.Battery{}, vehicle.Tire{}, err
	}
	tire, err := vehicle.NewTire(c.Tire.Radius, c.Tire.Inertia, vehicle.Pacejka{
		Stiffness: c.Tire.Stiffness,
		Shape:     c.Tire.Shape,
		Peak:      c.Tire.Peak,
		Curvature: c.Tire.Curvature,
	})
	if err != nil {
		return vehicle.Vehicle{}, vehicle.Motor{}, vehicle.Battery{}, vehicle.Tire{}, err
	}
	return veh, mot, bat, tire, nil
}

func DefaultConfig() *Config {
	cfg := *Presets["frc"]
	return &cfg
}
