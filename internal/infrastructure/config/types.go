package config

// Config is the root config for ghostinput.json
type Config struct {
	Correlator CorrelatorConfig `json:"correlator"`
	Bridge     BridgeConfig     `json:"bridge"`
}

// CorrelatorConfig tunes the legit-mode policy
type CorrelatorConfig struct {
	WindowBefore int64 `json:"windowBefore"` // Frames a live event corroborates backward
	WindowAfter  int64 `json:"windowAfter"`  // Frames a live event corroborates forward
	Horizon      int64 `json:"horizon"`      // Live-input retention (frames)
}

// BridgeConfig selects and parameterizes the host bridge
type BridgeConfig struct {
	Library     string `json:"library"`     // Host library path; empty = run offline
	BuildID     string `json:"buildId"`     // Host build id, keys the offset table
	X           int    `json:"x"`           // Fixed synthetic touch X
	Y           int    `json:"y"`           // Fixed synthetic touch Y
	Identity    uint64 `json:"identity"`    // Primary synthetic identity
	AltIdentity uint64 `json:"altIdentity"` // Secondary synthetic identity
}

// Default returns the built-in configuration used when no config file
// is present.
func Default() *Config {
	return &Config{
		Correlator: CorrelatorConfig{
			WindowBefore: 3,
			WindowAfter:  3,
			Horizon:      120,
		},
		Bridge: BridgeConfig{
			BuildID:     "2024.2",
			X:           240,
			Y:           360,
			Identity:    9001,
			AltIdentity: 9002,
		},
	}
}
