package bracket

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Alias lists for the exposure fields, most-preferred first. Spellings
// vary by camera and extractor: exiftool says "FNumber", OpenImageIO
// says "Exif:ApertureValue", other pipelines namespace with "/".
var (
	fnumberKeys  = []string{"FNumber"}
	apertureKeys = []string{"Exif:ApertureValue", "ApertureValue", "Aperture"}
	shutterKeys  = []string{"ExposureTime", "Exif:ShutterSpeedValue", "ShutterSpeedValue", "ShutterSpeed"}
	isoKeys      = []string{"Exif:PhotographicSensitivity", "PhotographicSensitivity", "Photographic Sensitivity", "ISO"}
)

// Resolve returns the value for the first alias that matches a record
// key, or def when none do. Each alias is tried three ways, in order:
// an exact lookup, a case-insensitive comparison against keys with
// their spaces stripped, and the same comparison after dropping any
// namespace prefix up to the last ":" and then the last "/". Record
// keys are scanned in sorted order so repeated calls agree even when
// several keys match.
func (r Record) Resolve(aliases []string, def interface{}) interface{} {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, alias := range aliases {
		if v, ok := r[alias]; ok {
			return v
		}

		want := strings.ToLower(alias)
		for _, k := range keys {
			got := strings.ReplaceAll(strings.ToLower(k), " ", "")
			if got == want {
				return r[k]
			}
			if i := strings.LastIndex(got, ":"); i >= 0 {
				got = got[i+1:]
			}
			if i := strings.LastIndex(got, "/"); i >= 0 {
				got = got[i+1:]
			}
			if got == want {
				return r[k]
			}
		}
	}

	return def
}

// exposure derives the exposure triple from a record. A missing
// f-number falls back to the APEX aperture value (fnumber = 2^(v/2)).
func (r Record) exposure() Exposure {
	e := Exposure{Fnumber: Unknown, Shutter: Unknown, ISO: Unknown}

	e.Fnumber = toFloat(r.Resolve(fnumberKeys, nil), Unknown)
	if e.Fnumber == Unknown {
		if av := toFloat(r.Resolve(apertureKeys, nil), Unknown); av != Unknown {
			e.Fnumber = math.Pow(2.0, av/2.0)
		}
	}

	e.Shutter = toFloat(r.Resolve(shutterKeys, nil), Unknown)
	e.ISO = toFloat(r.Resolve(isoKeys, nil), Unknown)
	return e
}

// toFloat coerces a scalar metadata value to a float64. Extractors
// hand back numbers, numeric strings, and rationals like "1/200".
func toFloat(v interface{}, def float64) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		s := strings.TrimSpace(t)
		if num, den, ok := strings.Cut(s, "/"); ok {
			n, errN := strconv.ParseFloat(num, 64)
			d, errD := strconv.ParseFloat(den, 64)
			if errN != nil || errD != nil || d == 0 {
				return def
			}
			return n / d
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
