package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"oscope/app"
	"oscope/hal"
	"oscope/scope/acquire"
	"oscope/scope/display"
)

func main() {
	var (
		hcfg     hal.HeadlessConfig
		cfg      app.Config
		multi    string
		wave1    string
		wave2    string
		expr1    string
		expr2    string
		snapshot string
	)
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&hcfg.Width, "width", hal.DefaultWidth, "Initial surface width.")
	flag.IntVar(&hcfg.Height, "height", hal.DefaultHeight, "Initial surface height.")
	flag.StringVar(&cfg.Mode, "mode", app.ModeMath, "Producing mode: math or signal.")
	flag.StringVar(&multi, "multi", "overlay", "Multi-trace layout: overlay, scale or xy.")
	flag.Float64Var(&cfg.SamplesPerPixel, "spp", 1, "Samples per pixel of the longest surface dimension.")
	flag.BoolVar(&cfg.Stabilize, "stabilize", true, "Align signal traces on a rising zero crossing.")
	flag.StringVar(&expr1, "expr1", app.DefaultExprs[0], "Math mode body of function(x, t) for trace 1.")
	flag.StringVar(&expr2, "expr2", app.DefaultExprs[1], "Math mode body of function(x, t) for trace 2 (empty to omit).")
	flag.Float64Var(&cfg.Freqs[0], "freq1", 440, "Signal mode frequency of channel 1 in Hz.")
	flag.Float64Var(&cfg.Freqs[1], "freq2", 660, "Signal mode frequency of channel 2 in Hz.")
	flag.StringVar(&wave1, "wave1", "sine", "Signal mode waveform of channel 1.")
	flag.StringVar(&wave2, "wave2", "square", "Signal mode waveform of channel 2.")
	flag.StringVar(&snapshot, "snapshot", "", "Headless: write the final frame to this PNG file.")
	flag.Parse()

	var err error
	if cfg.MultiMode, err = display.ParseMultiMode(multi); err != nil {
		fatal(err)
	}
	if cfg.Waves[0], err = acquire.ParseWaveform(wave1); err != nil {
		fatal(err)
	}
	if cfg.Waves[1], err = acquire.ParseWaveform(wave2); err != nil {
		fatal(err)
	}
	cfg.Exprs = []string{expr1}
	if expr2 != "" {
		cfg.Exprs = append(cfg.Exprs, expr2)
	}

	if !hcfg.Enabled {
		if err := hal.RunWindow(func(h hal.HAL) hal.App {
			return app.NewWithConfig(h, cfg)
		}, hcfg.Width, hcfg.Height); err != nil {
			fatal(err)
		}
		return
	}

	cfg.LogRate = true
	var host hal.HAL
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = hal.RunHeadless(ctx, func(h hal.HAL) hal.App {
		host = h
		return app.NewWithConfig(h, cfg)
	}, hcfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
	if snapshot != "" && host != nil {
		if err := writeSnapshot(snapshot, host.Display().Framebuffer()); err != nil {
			fatal(err)
		}
	}
}

func writeSnapshot(path string, fb hal.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.Image()); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	return f.Close()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
