package grade

import "math"

// Model maps a terrain gradient (percent) to a unitless pace multiplier.
// Values above 1 mean slower than flat-equivalent pace.
type Model func(gradientPct float64) float64

// Gradients outside this window are treated as the window edge; steeper
// readings are almost always GPS/barometer artifacts.
const (
	MinGradient = -35.0
	MaxGradient = 35.0
)

// Clamp restricts a gradient to the supported window.
func Clamp(gradientPct float64) float64 {
	if gradientPct < MinGradient {
		return MinGradient
	}
	if gradientPct > MaxGradient {
		return MaxGradient
	}
	return gradientPct
}

// Default returns the simplified quadratic model used when a caller
// supplies no coefficients. Floored at 0.3 so steep descents never
// produce an absurdly small multiplier; no upper cap.
func Default() Model {
	return func(gradientPct float64) float64 {
		g := Clamp(gradientPct)
		f := 1 + g*0.033 + g*g*0.000233
		return math.Max(0.3, f)
	}
}

// Quartic builds a model from five fitted polynomial coefficients:
// f(g) = a·g⁴ + b·g³ + c·g² + d·g + e.
func Quartic(a, b, c, d, e float64) Model {
	return func(gradientPct float64) float64 {
		g := Clamp(gradientPct)
		return a*g*g*g*g + b*g*g*g + c*g*g + d*g + e
	}
}

// Literature is the published quartic fit (Minetti-derived energy-cost
// curve) used as the reference when comparing a runner's personal
// adjustment curve against research data.
func Literature() Model {
	return Quartic(-5.294439e-7, 2.2026e-5, 0.0013094, 0.03326, 1.0)
}
