// SPDX-License-Identifier: MIT

package config

import "errors"

// ErrInvalidConfig indicates a configuration value the daemon cannot start with.
var ErrInvalidConfig = errors.New("invalid configuration")
