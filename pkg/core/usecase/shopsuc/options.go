// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package shopsuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the coffee shops use case.
type Option func(uc *UseCase) error

// WithGeocodeTimeout option configures a coffee shops UseCase instance
// in order to give up on a geocoding request after the given timeout.
// This option may be passed to the New() function.
func WithGeocodeTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if uc.geocodeTimeout != 0 {
			return errors.New("timeout is already configured")
		}
		uc.geocodeTimeout = timeout
		return nil
	}
}
