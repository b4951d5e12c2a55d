package types

import "errors"

// DBFileName is the SQLite database file created inside DataDir.
const DBFileName = "tarefitas.db"

// Config holds the parameters for opening the store.
type Config struct {
	// DataDir is the directory holding the database file. Created if
	// missing.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ErrDataDirEmpty is returned by Validate when no data directory is set.
var ErrDataDirEmpty = errors.New("data_dir must not be empty")

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
