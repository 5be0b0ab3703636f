// Command fieldscope runs the engine with a terminal visualizer.
//
// With a file argument it decodes the MP3, pushes it through the
// effect in a beep playback chain, and shows the telemetry. Without
// one it opens the audio device directly and the built-in test tone
// is the signal source.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/1hoookkk/fieldengine/internal/config"
	"github.com/1hoookkk/fieldengine/internal/ui"
	"github.com/1hoookkk/fieldengine/pkg/dsp/filter"
	"github.com/1hoookkk/fieldengine/pkg/engine"
	"github.com/1hoookkk/fieldengine/pkg/framework/debug"
	"github.com/1hoookkk/fieldengine/pkg/host"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	logPath := flag.String("log", "", "path to log file (default: discard)")
	flag.Parse()

	if err := run(*configPath, *logPath, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "fieldscope:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath, audioFile string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// The UI owns the terminal; logs go to a file or nowhere.
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		debug.SetOutput(f)
	} else {
		debug.SetLevel(debug.LogLevelOff)
	}

	proc := engine.NewProcessor()
	a, b := filter.ShapePair(cfg.ShapePair)
	proc.SetShapePair(a, b)

	params := proc.Parameters()
	params.Get(engine.ParamCharacter).SetPlainValue(cfg.Character)
	params.Get(engine.ParamMix).SetPlainValue(cfg.Mix)
	params.Get(engine.ParamGain).SetPlainValue(cfg.GainDb)

	if audioFile != "" {
		return runWithFile(proc, cfg, audioFile)
	}
	return runWithDevice(proc, cfg)
}

// runWithDevice renders the engine straight to the audio device. The
// input is silent, so the test tone starts enabled.
func runWithDevice(proc *engine.Processor, cfg config.Config) error {
	proc.Parameters().Get(engine.ParamTestTone).SetBool(true)

	h, err := host.NewOtoHost(proc, cfg.SampleRate, cfg.BlockSize)
	if err != nil {
		return err
	}
	defer h.Close()
	h.Start()

	return runUI(proc, cfg)
}

// runWithFile decodes an MP3 and plays it through the effect.
func runWithFile(proc *engine.Processor, cfg config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding audio file: %w", err)
	}
	defer streamer.Close()

	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	defer speaker.Close()

	if err := proc.Initialize(float64(cfg.SampleRate), cfg.BlockSize); err != nil {
		return fmt.Errorf("initializing processor: %w", err)
	}
	if err := proc.SetActive(true); err != nil {
		return fmt.Errorf("activating processor: %w", err)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != sr {
		s = beep.Resample(4, format.SampleRate, sr, s)
	}
	s = host.NewEffectStreamer(proc, s, cfg.BlockSize)
	speaker.Play(s)

	return runUI(proc, cfg)
}

func runUI(proc *engine.Processor, cfg config.Config) error {
	model := ui.NewModel(proc, float64(cfg.SampleRate), cfg.RefreshHz)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
