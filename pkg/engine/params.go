package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1hoookkk/fieldengine/pkg/framework/param"
)

// Parameter IDs.
const (
	ParamCharacter uint32 = iota
	ParamMix
	ParamGain
	ParamBypass
	ParamTestTone
	ParamEffectMode
)

func percentFormatter(v float64) string {
	return fmt.Sprintf("%.0f %%", v)
}

func percentParser(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"), 64)
}

func decibelFormatter(v float64) string {
	return fmt.Sprintf("%+.1f dB", v)
}

func decibelParser(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "dB"))
	return strconv.ParseFloat(s, 64)
}

func registerParams(reg *param.Registry) {
	reg.Add(
		param.New(ParamCharacter, "Character").
			Range(0, 100).Default(50).Unit("%").
			Formatter(percentFormatter, percentParser).
			Build(),
		param.New(ParamMix, "Mix").
			Range(0, 100).Default(100).Unit("%").
			Formatter(percentFormatter, percentParser).
			Build(),
		param.New(ParamGain, "Output Gain").
			Range(-12, 12).Default(0).Unit("dB").
			Formatter(decibelFormatter, decibelParser).
			Build(),
		param.New(ParamBypass, "Bypass").Toggle().Bypass().Build(),
		param.New(ParamTestTone, "Test Tone").Toggle().Build(),
		param.New(ParamEffectMode, "Effect Mode").Toggle().Build(),
	)
}
