package filter

// Shape stores six pole pairs as [r, theta] scalars at the 48 kHz
// reference rate. The tables below were extracted from the original
// hardware units and are used as morph endpoints.
type Shape [2 * NumSections]float32

// Vowel pair (default): vocal-tract style formants.
var (
	VowelA = Shape{
		0.95, 0.01047197551529928,
		0.96, 0.01963495409118615,
		0.985, 0.03926990818237230,
		0.992, 0.11780972454711690,
		0.993, 0.32724923485310250,
		0.985, 0.45814892879434435,
	}

	VowelB = Shape{
		0.88, 0.00523598775764964,
		0.90, 0.01047197551529928,
		0.92, 0.02094395103059856,
		0.94, 0.04188790206119712,
		0.96, 0.08377580412239424,
		0.97, 0.16755160824478848,
	}
)

// Bell pair: bright metallic resonances.
var (
	BellA = Shape{
		0.996, 0.14398966333536510,
		0.995, 0.18325957151773740,
		0.994, 0.28797932667073020,
		0.993, 0.39269908182372300,
		0.992, 0.54977871437816500,
		0.990, 0.78539816364744630,
	}

	BellB = Shape{
		0.994, 0.19634954085771740,
		0.993, 0.26179938779814450,
		0.992, 0.39269908182372300,
		0.991, 0.52359877584930150,
		0.990, 0.70685834741592550,
		0.988, 0.94247779605813900,
	}
)

// Low pair: punchy bass emphasis.
var (
	LowA = Shape{
		0.88, 0.00392699081823723,
		0.90, 0.00785398163647446,
		0.92, 0.01570796327294893,
		0.94, 0.03272492348531062,
		0.96, 0.06544984697062124,
		0.97, 0.13089969394124100,
	}

	LowB = Shape{
		0.92, 0.00654498469706212,
		0.94, 0.01308996939412425,
		0.96, 0.02617993878824850,
		0.97, 0.05235987755649700,
		0.98, 0.10471975511299400,
		0.985, 0.20943951022598800,
	}
)

// SubBass pair: ultra-low rumble.
var (
	SubA = Shape{
		0.85, 0.00130899694,
		0.87, 0.00261799388,
		0.89, 0.00523598776,
		0.91, 0.01047197551,
		0.93, 0.02094395103,
		0.95, 0.04188790206,
	}

	SubB = Shape{
		0.92, 0.00872664626,
		0.94, 0.01745329252,
		0.96, 0.03490658504,
		0.97, 0.06981317008,
		0.98, 0.10471975511,
		0.97, 0.13962634016,
	}
)

// ShapePair looks up a named morph pair. Unknown names fall back to
// the vowel pair.
func ShapePair(name string) (a, b Shape) {
	switch name {
	case "bell":
		return BellA, BellB
	case "low":
		return LowA, LowB
	case "sub":
		return SubA, SubB
	default:
		return VowelA, VowelB
	}
}

// poles unpacks a shape into its pole pairs.
func (s Shape) poles() [NumSections]PolePair {
	var out [NumSections]PolePair
	for i := range out {
		out[i] = PolePair{R: s[2*i], Theta: s[2*i+1]}
	}
	return out
}
