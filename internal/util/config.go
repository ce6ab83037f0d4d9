package util

import (
	"github.com/BurntSushi/toml"
)

// Configuration carries the settings the shell assembles from defaults,
// an optional TOML file, and command line flags. Flags win over the file.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// LoadFile overlays values from a TOML file onto c.
func LoadFile(path string, c *Configuration) error {
	_, err := toml.DecodeFile(path, c)
	return err
}
