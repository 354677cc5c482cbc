package config

import "sort"

// Presets are known-good configurations. "frc" is the reference FRC
// drivetrain the model was built to size.
var Presets = map[string]*Config{
	"frc": {
		Vehicle: VehicleConfig{A: 0.126, B: 0.126, Mass: 5, CGHeight: 0.032, DragCoeff: 0.75, FrontalArea: 0.0418},
		Motor:   MotorConfig{Kv: 2000, Efficiency: 0.8},
		Battery: BatteryConfig{CapacityAh: 10, CRate: 5, Voltage: 3.6, BurstTime: 8},
		Tire:    TireConfig{Radius: 0.032, Inertia: 0.00001667, Stiffness: 16.6675, Shape: 0.05343, Peak: 65.1759, Curvature: 1.0301},
		Dt:      DefaultDt,
		Runtime: DefaultRuntime,
	},
	"frc-heavy": {
		Vehicle: VehicleConfig{A: 0.126, B: 0.126, Mass: 6.8, CGHeight: 0.04, DragCoeff: 0.75, FrontalArea: 0.0418},
		Motor:   MotorConfig{Kv: 2000, Efficiency: 0.8},
		Battery: BatteryConfig{CapacityAh: 10, CRate: 5, Voltage: 3.6, BurstTime: 8},
		Tire:    TireConfig{Radius: 0.032, Inertia: 0.00001667, Stiffness: 16.6675, Shape: 0.05343, Peak: 65.1759, Curvature: 1.0301},
		Dt:      DefaultDt,
		Runtime: DefaultRuntime,
	},
	"frc-small-pack": {
		Vehicle: VehicleConfig{A: 0.126, B: 0.126, Mass: 5, CGHeight: 0.032, DragCoeff: 0.75, FrontalArea: 0.0418},
		Motor:   MotorConfig{Kv: 2000, Efficiency: 0.8},
		Battery: BatteryConfig{CapacityAh: 5, CRate: 2, Voltage: 3.6, BurstTime: 8},
		Tire:    TireConfig{Radius: 0.032, Inertia: 0.00001667, Stiffness: 16.6675, Shape: 0.05343, Peak: 65.1759, Curvature: 1.0301},
		Dt:      DefaultDt,
		Runtime: DefaultRuntime,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	copied := *cfg
	return &copied
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
