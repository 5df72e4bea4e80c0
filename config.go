////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package readcheck

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultName is the backing object the fixture opens.
	DefaultName = "write.out"

	// DefaultRequestLen is the number of bytes requested from Read.
	DefaultRequestLen = 10

	// DefaultBufferSize is the capacity of the destination buffer.
	DefaultBufferSize = 128

	// DefaultInspectLen is the number of buffer positions echoed after the
	// read.
	DefaultInspectLen = 10

	// DefaultFailStatus is the exit status when no handle can be acquired.
	DefaultFailStatus = -1002
)

const (
	errEmptyName     = "Invalid config: name is empty"
	errRequestLen    = "Invalid config: request_len %d is negative"
	errBufferSize    = "Invalid config: buffer_size %d is smaller than request_len %d"
	errInspectLen    = "Invalid config: inspect_len %d must be within [0, buffer_size %d]"
	errFailStatus    = "Invalid config: fail_status must not be 0"
	errReadConfig    = "Failed to read config %s"
	errDecodeConfig  = "Failed to decode config %s"
	errInvalidConfig = "Config %s"
)

// Config holds the fixed parameters of a fixture run.
type Config struct {
	Name       string `toml:"name"`
	RequestLen int    `toml:"request_len"`
	BufferSize int    `toml:"buffer_size"`
	InspectLen int    `toml:"inspect_len"`
	FailStatus int    `toml:"fail_status"`
}

// DefaultConfig returns the parameters of the standard fixture: read 10 bytes
// of write.out into a 128 byte buffer.
func DefaultConfig() Config {
	return Config{
		Name:       DefaultName,
		RequestLen: DefaultRequestLen,
		BufferSize: DefaultBufferSize,
		InspectLen: DefaultInspectLen,
		FailStatus: DefaultFailStatus,
	}
}

// LoadConfig decodes a TOML file over DefaultConfig, so the file only needs
// the keys it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, errReadConfig, path)
	}

	if err = toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, errDecodeConfig, path)
	}

	if err = cfg.Validate(); err != nil {
		return cfg, errors.WithMessagef(err, errInvalidConfig, path)
	}

	return cfg, nil
}

// Validate checks that the buffer can hold the request and the inspected
// span.
func (c Config) Validate() error {
	switch {
	case c.Name == "":
		return errors.New(errEmptyName)
	case c.RequestLen < 0:
		return errors.Errorf(errRequestLen, c.RequestLen)
	case c.BufferSize < c.RequestLen:
		return errors.Errorf(errBufferSize, c.BufferSize, c.RequestLen)
	case c.InspectLen < 0 || c.InspectLen > c.BufferSize:
		return errors.Errorf(errInspectLen, c.InspectLen, c.BufferSize)
	case c.FailStatus == 0:
		return errors.New(errFailStatus)
	}
	return nil
}
