package bracket

import "math"

// Reference constants for exposure-value normalization.
const (
	RefISO     = 100.0
	RefFnumber = 1.0
)

// Unknown marks an exposure field that could not be resolved.
const Unknown = -1.0

// Exposure is the exposure triple for one image. Fields are Unknown
// when the metadata did not provide them.
type Exposure struct {
	Fnumber float64 `json:"fnumber"`
	Shutter float64 `json:"shutter"`
	ISO     float64 `json:"iso"`
}

// usable reports whether v can participate in exposure arithmetic.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// less orders triples field by field: f-number, then shutter, then ISO.
func (e Exposure) less(o Exposure) bool {
	if e.Fnumber != o.Fnumber {
		return e.Fnumber < o.Fnumber
	}
	if e.Shutter != o.Shutter {
		return e.Shutter < o.Shutter
	}
	return e.ISO < o.ISO
}

// Value collapses the triple into a single comparable scalar that
// grows with perceived brightness, normalized against RefISO/RefFnumber.
func (e Exposure) Value() float64 {
	return e.ValueRef(RefISO, RefFnumber)
}

// ValueRef is Value with explicit reference constants. It returns
// Unknown when neither the shutter speed nor the f-number is usable.
// When exactly one is missing, a stand-in is used: 1/200s for the
// shutter, the reference f-number (or 2.0 if the reference itself is
// invalid) for the aperture. ISO scales the effective aperture by
// sqrt(iso/refISO). An invalid reference f-number degrades to the
// image's own aperture, so the value reduces to the shutter speed.
func (e Exposure) ValueRef(refISO float64, refFnumber float64) float64 {
	fnumber := e.Fnumber
	shutter := e.Shutter

	validShutter := usable(shutter)
	validFnumber := usable(fnumber)
	if !validShutter && !validFnumber {
		return Unknown
	}

	validRef := usable(refFnumber)

	if !validShutter {
		shutter = 1.0 / 200.0
	}

	if !validFnumber {
		if validRef {
			fnumber = refFnumber
		} else {
			fnumber = 2.0
		}
	}

	ref := refFnumber
	if !validRef {
		ref = fnumber
	}

	isoToAperture := 1.0
	if e.ISO > 1e-6 && refISO > 1e-6 {
		isoToAperture = math.Sqrt(e.ISO / refISO)
	}

	fnumber *= isoToAperture
	return shutter * (ref / fnumber) * (ref / fnumber)
}
