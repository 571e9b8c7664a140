package config

// Preset is a named gameplay profile applied on top of a loaded config.
type Preset string

const (
	PresetClassic   Preset = "classic"
	PresetChaos     Preset = "chaos"
	PresetEndurance Preset = "endurance"
)

// ApplyPreset modifies the config based on a named gameplay preset.
// Unknown presets leave the config untouched.
func ApplyPreset(cfg *ArenaConfig, preset Preset) {
	switch preset {
	case PresetClassic:
		// The loaded values already are the classic profile.
	case PresetChaos:
		cfg.Map.DestructibleProb = 0.9
		cfg.Rules.BombFuseMs = 2000
		cfg.Rules.PowerUpChance = 0.4
		cfg.Timings.GameSeconds = 180
	case PresetEndurance:
		cfg.Map.Width = 21
		cfg.Map.Height = 17
		cfg.Rules.PowerUpChance = 0.2
		cfg.Timings.GameSeconds = 600
	}
}

// ValidPreset reports whether the name maps to a known preset.
func ValidPreset(name string) bool {
	switch Preset(name) {
	case PresetClassic, PresetChaos, PresetEndurance:
		return true
	}
	return false
}
