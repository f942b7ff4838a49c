package config

type HeightProfile string

const (
	HEIGHT_PROFILE_FLAT HeightProfile = "flat" // Level floor at y = 0.
	HEIGHT_PROFILE_RAMP HeightProfile = "ramp" // Floor that tilts up along +X past RampStart.
	HEIGHT_PROFILE_WAVE HeightProfile = "wave" // Rolling hills.

	DESC_HEIGHT_PROFILE_FLAT = "Flat floor"
	DESC_HEIGHT_PROFILE_RAMP = "Floor and ramp"
	DESC_HEIGHT_PROFILE_WAVE = "Rolling hills"
)

func (p HeightProfile) Desc() string {
	switch p {
	case HEIGHT_PROFILE_FLAT:
		return DESC_HEIGHT_PROFILE_FLAT
	case HEIGHT_PROFILE_RAMP:
		return DESC_HEIGHT_PROFILE_RAMP
	case HEIGHT_PROFILE_WAVE:
		return DESC_HEIGHT_PROFILE_WAVE
	}
	return ""
}
