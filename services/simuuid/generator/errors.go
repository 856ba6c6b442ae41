// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package generator

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel matched by every construction failure.
var ErrInvalidConfig = errors.New("invalid generator configuration")

// InvalidConfigError reports a rejected Config field.
//
// Error returns the bare message ("x must be more than 1") so callers can
// surface it unchanged to clients.
type InvalidConfigError struct {
	Field   string
	Value   int
	Message string
}

func (e *InvalidConfigError) Error() string { return e.Message }

// Unwrap makes errors.Is(err, ErrInvalidConfig) hold.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Detail returns the message with the offending value, for logs.
func (e *InvalidConfigError) Detail() string {
	return fmt.Sprintf("%s (%s=%d)", e.Message, e.Field, e.Value)
}
