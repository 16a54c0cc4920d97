package keys

import (
	"fmt"
	"math"

	"github.com/Vishalkulkarni45/verifiable-fhe-paper/field"
	"github.com/Vishalkulkarni45/verifiable-fhe-paper/glwe"
	"github.com/montanaflynn/stats"
)

// NoiseStats summarizes the signed differences between a decrypted and an expected polynomial.
type NoiseStats struct {
	Mean   float64
	StdDev float64
	// Max is the largest absolute difference.
	Max float64
}

// String returns a human readable summary.
func (ns NoiseStats) String() string {
	return fmt.Sprintf("mean=%.2f std=%.2f max=%.0f (log2 max=%.2f)", ns.Mean, ns.StdDev, ns.Max, math.Log2(ns.Max))
}

// Noise returns the statistics of have - want.
func Noise(have, want glwe.Poly[field.Element]) (ns NoiseStats, err error) {

	if have.N() != want.N() {
		return ns, fmt.Errorf("cannot Noise: degrees %d != %d", have.N(), want.N())
	}

	diffs := make([]float64, have.N())
	abs := make([]float64, have.N())
	for i := range diffs {
		var d field.Element
		d.Sub(&have.Coeffs[i], &want.Coeffs[i])
		diffs[i] = float64(field.Signed(d))
		abs[i] = math.Abs(diffs[i])
	}

	if ns.Mean, err = stats.Mean(diffs); err != nil {
		return ns, fmt.Errorf("stats.Mean: %w", err)
	}

	if ns.StdDev, err = stats.StandardDeviation(diffs); err != nil {
		return ns, fmt.Errorf("stats.StandardDeviation: %w", err)
	}

	if ns.Max, err = stats.Max(abs); err != nil {
		return ns, fmt.Errorf("stats.Max: %w", err)
	}

	return
}
