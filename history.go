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

package wwtp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// History is a bounded time-series recorder: one FIFO buffer per parameter,
// shared across all units of a plant. When a buffer is at capacity, adding a
// value evicts the oldest entry. History is owned by a Plant and cleared on
// plant reset.
type History struct {
	capacity int
	values   [numParameters][]float64
}

// NewHistory creates a recorder keeping at most capacity values per
// parameter. A non-positive capacity falls back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Capacity returns the per-parameter buffer capacity.
func (h *History) Capacity() int { return h.capacity }

// Add appends val to the buffer for parameter p, evicting the oldest value
// if the buffer is full.
func (h *History) Add(p Parameter, val float64) {
	b := h.values[p]
	if len(b) >= h.capacity {
		copy(b, b[1:])
		b = b[:len(b)-1]
	}
	h.values[p] = append(b, val)
}

// Len returns the number of recorded values for parameter p.
func (h *History) Len(p Parameter) int { return len(h.values[p]) }

// Values returns the recorded values for parameter p in arrival order,
// oldest first. The returned slice is a copy.
func (h *History) Values(p Parameter) []float64 {
	o := make([]float64, len(h.values[p]))
	copy(o, h.values[p])
	return o
}

// Mean returns the arithmetic mean of the recorded values for parameter p,
// or NaN if nothing has been recorded.
func (h *History) Mean(p Parameter) float64 {
	b := h.values[p]
	if len(b) == 0 {
		return math.NaN()
	}
	return floats.Sum(b) / float64(len(b))
}

// Max returns the largest recorded value for parameter p, or NaN if nothing
// has been recorded.
func (h *History) Max(p Parameter) float64 {
	b := h.values[p]
	if len(b) == 0 {
		return math.NaN()
	}
	return floats.Max(b)
}

// Min returns the smallest recorded value for parameter p, or NaN if
// nothing has been recorded.
func (h *History) Min(p Parameter) float64 {
	b := h.values[p]
	if len(b) == 0 {
		return math.NaN()
	}
	return floats.Min(b)
}

// Clear drops all recorded values, keeping the configured capacity.
func (h *History) Clear() {
	for i := range h.values {
		h.values[i] = nil
	}
}
