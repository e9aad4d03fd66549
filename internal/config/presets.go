package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"quick": {
		Scramble: ScrambleConfig{MinSteps: 2, MaxSteps: 5},
		Motion:   MotionConfig{Rate: 2.5, Dwell: 1.0},
		Run:      RunConfig{Dt: DefaultDt, Duration: 30.0},
		View:     ViewConfig{FPS: DefaultFPS, Theme: "ocean", Tumble: true, Spacing: DefaultSpacing},
	},
	"marathon": {
		Scramble: ScrambleConfig{MinSteps: 20, MaxSteps: 40},
		Motion:   MotionConfig{Rate: 1.5, Dwell: 5.0},
		Run:      RunConfig{Dt: DefaultDt, Duration: 600.0},
		View:     ViewConfig{FPS: DefaultFPS, Theme: "minimal", Tumble: true, Spacing: DefaultSpacing},
	},
	"blitz": {
		Scramble: ScrambleConfig{MinSteps: DefaultMinSteps, MaxSteps: DefaultMaxSteps},
		Motion:   MotionConfig{Rate: 8.0, Dwell: 0.5},
		Run:      RunConfig{Dt: 0.005, Duration: 60.0},
		View:     ViewConfig{FPS: 30, Theme: "cyberpunk", Tumble: false, Spacing: 2.2},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
