/*
Copyright © 2024 the WWTP authors.
This file is part of WWTP.

WWTP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WWTP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WWTP.  If not, see <http://www.gnu.org/licenses/>.
*/

package wwtputil

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// SimConfig holds the driver-side simulation settings.
type SimConfig struct {
	// Ticks is the number of simulation steps to run.
	Ticks int

	// TickSeconds is the nominal frame duration [seconds] before the
	// speed multiplier is applied.
	TickSeconds float64

	// Speed is the user speed multiplier, clamped to
	// [SpeedMin, SpeedMax] before use.
	Speed    float64
	SpeedMin float64
	SpeedMax float64

	// HistoryCapacity is the number of values kept per parameter by the
	// plant's history recorder.
	HistoryCapacity int

	// Scenario is the path to a TOML scenario file. Empty means the
	// default example train.
	Scenario string
}

// SimConfigFromViper extracts and validates simulation settings from the
// given configuration.
func SimConfigFromViper(cfg *viper.Viper) (*SimConfig, error) {
	c := &SimConfig{
		Ticks:           cast.ToInt(cfg.Get("ticks")),
		TickSeconds:     cast.ToFloat64(cfg.Get("tick_seconds")),
		Speed:           cast.ToFloat64(cfg.Get("speed")),
		SpeedMin:        cast.ToFloat64(cfg.Get("speed_min")),
		SpeedMax:        cast.ToFloat64(cfg.Get("speed_max")),
		HistoryCapacity: cast.ToInt(cfg.Get("history_capacity")),
		Scenario:        os.ExpandEnv(cast.ToString(cfg.Get("scenario"))),
	}
	if c.Ticks <= 0 {
		return nil, fmt.Errorf("wwtputil: ticks must be positive but is %d", c.Ticks)
	}
	if c.TickSeconds <= 0 {
		return nil, fmt.Errorf("wwtputil: tick_seconds must be positive but is %g", c.TickSeconds)
	}
	if c.SpeedMin <= 0 || c.SpeedMax < c.SpeedMin {
		return nil, fmt.Errorf("wwtputil: invalid speed range [%g,%g]", c.SpeedMin, c.SpeedMax)
	}
	if c.HistoryCapacity <= 0 {
		return nil, fmt.Errorf("wwtputil: history_capacity must be positive but is %d", c.HistoryCapacity)
	}
	return c, nil
}

// ClampedSpeed returns the speed multiplier limited to the configured
// range.
func (c *SimConfig) ClampedSpeed() float64 {
	s := c.Speed
	if s < c.SpeedMin {
		s = c.SpeedMin
	}
	if s > c.SpeedMax {
		s = c.SpeedMax
	}
	return s
}

// Dt returns the time-step duration [seconds] for one tick: the frame
// duration scaled by the clamped speed multiplier.
func (c *SimConfig) Dt() float64 {
	return c.TickSeconds * c.ClampedSpeed()
}
