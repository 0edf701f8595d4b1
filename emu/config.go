package emu

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"cps2/emu/log"
	"cps2/hw/qsound"
)

type Config struct {
	General   GeneralConfig   `toml:"general"`
	Audio     AudioConfig     `toml:"audio"`
	Emulation EmulationConfig `toml:"emulation"`
	Debug     DebugConfig     `toml:"debug"`

	TraceOut io.Writer `toml:"-"`
}

type GeneralConfig struct {
	// NVRAMDir holds the EEPROM contents of each game. Defaults to the nvram
	// directory under ConfigDir.
	NVRAMDir string `toml:"nvram_dir"`
	// ROMPath lists the directories searched for ROM sets.
	ROMPath []string `toml:"rom_path,omitempty"`
}

type AudioConfig struct {
	DisableAudio bool    `toml:"disable_audio"`
	SampleRate   int     `toml:"sample_rate"`
	Volume       float64 `toml:"volume"`
}

type EmulationConfig struct {
	RunAheadFrames int `toml:"run_ahead_frames"`
}

type DebugConfig struct {
	LogUnmapped bool `toml:"log_unmapped"`
}

const maxRunAheadFrames = 4

func DefaultConfig() Config {
	return Config{
		Audio: AudioConfig{
			SampleRate: qsound.DefaultSampleRate,
			Volume:     1,
		},
	}
}

// Check replaces invalid settings with their default values.
func (cfg *Config) Check() {
	if cfg.Audio.SampleRate <= 0 || cfg.Audio.SampleRate > qsound.MaxSampleRate {
		log.ModEmu.Warnf("Invalid sample rate %d, fallback to %d", cfg.Audio.SampleRate, qsound.DefaultSampleRate)
		cfg.Audio.SampleRate = qsound.DefaultSampleRate
	}
	if cfg.Audio.Volume < 0 || cfg.Audio.Volume > 1 {
		log.ModEmu.Warnf("Invalid volume %v, fallback to 1", cfg.Audio.Volume)
		cfg.Audio.Volume = 1
	}
	if cfg.Emulation.RunAheadFrames < 0 || cfg.Emulation.RunAheadFrames > maxRunAheadFrames {
		log.ModEmu.Warnf("Invalid run-ahead frame count %d, disabling run-ahead", cfg.Emulation.RunAheadFrames)
		cfg.Emulation.RunAheadFrames = 0
	}
}

// NVRAMDir returns the directory where EEPROM contents are stored.
func (cfg *Config) NVRAMDir() string {
	if cfg.General.NVRAMDir != "" {
		return cfg.General.NVRAMDir
	}
	return filepath.Join(ConfigDir(), "nvram")
}

// ConfigDir returns the cps2 configuration directory, creating it if needed.
var ConfigDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to locate config directory: %v", err)
	}
	dir = filepath.Join(dir, "cps2")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// LoadConfig loads the configuration file at path. Settings missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.Check()
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the cps2 config directory,
// or provide a default one.
func LoadConfigOrDefault() Config {
	path := filepath.Join(ConfigDir(), cfgFilename)
	cfg, err := LoadConfig(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.ModEmu.WarnZ("Failed to load config, using defaults").String("path", path).Error("err", err).End()
	}
	return cfg
}

// SaveConfig into cps2 config directory.
func SaveConfig(cfg Config) error {
	return WriteConfig(filepath.Join(ConfigDir(), cfgFilename), cfg)
}

func WriteConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}
