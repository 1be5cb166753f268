package wire

import (
	"fmt"
	"math/cmplx"
)

// PhasedCurrent is a current amplitude (A) with a phase angle (rad).
//
// The solver works on the complex encoding returned by Complex, where the
// real part carries the amplitude and the imaginary part the phase. That
// encoding is not the physical phasor; use Phasor for A·e^{iφ}.
type PhasedCurrent struct {
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"`
}

// DefaultCurrent is 1 A at zero phase.
var DefaultCurrent = PhasedCurrent{Amplitude: 1}

// Complex returns the amplitude/phase pair encoded as amplitude + i·phase.
func (c PhasedCurrent) Complex() complex128 {
	return complex(c.Amplitude, c.Phase)
}

// Phasor returns the physical phasor A·e^{iφ}.
func (c PhasedCurrent) Phasor() complex128 {
	return cmplx.Rect(c.Amplitude, c.Phase)
}

// Effective returns the current carried by n turns: the amplitude is scaled
// by n, the phase is left untouched.
func (c PhasedCurrent) Effective(n int) PhasedCurrent {
	return PhasedCurrent{Amplitude: c.Amplitude * float64(n), Phase: c.Phase}
}

// Add combines two currents as vectors in the complex plane of their
// encodings.
func (c PhasedCurrent) Add(o PhasedCurrent) PhasedCurrent {
	sum := c.Complex() + o.Complex()
	return PhasedCurrent{Amplitude: real(sum), Phase: imag(sum)}
}

func (c PhasedCurrent) String() string {
	return fmt.Sprintf("%.4g A ∠ %.4g rad", c.Amplitude, c.Phase)
}
