// Command sonido-align locates a track recording inside a base recording
// and prints the offset. Both files are decoded from WAV, mixed to mono,
// and correlated at the base's native sample rate.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-align/algorithms/common"
	"github.com/RyanBlaney/sonido-align/algorithms/filters"
	"github.com/RyanBlaney/sonido-align/algorithms/preprocess"
	"github.com/RyanBlaney/sonido-align/algorithms/resample"
	"github.com/RyanBlaney/sonido-align/align"
	"github.com/RyanBlaney/sonido-align/logging"
)

type options struct {
	basePath  string
	trackPath string
	threads   int
	quality   string
	phat      bool
	lowHz     float64
	highHz    float64
	verbose   bool
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "sonido-align",
		Short:         "Locate a track recording inside a base recording",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.basePath, "base", "b", "", "base (reference) WAV file")
	rootCmd.Flags().StringVarP(&opts.trackPath, "track", "t", "", "track (query) WAV file to locate")
	rootCmd.Flags().IntVarP(&opts.threads, "threads", "n", runtime.NumCPU(), "worker count for data-parallel stages")
	rootCmd.Flags().StringVarP(&opts.quality, "quality", "q", "medium", "resampling quality preset (quick, low, medium, high, veryhigh)")
	rootCmd.Flags().BoolVar(&opts.phat, "phat", false, "whiten spectra (GCC-PHAT) before correlating")
	rootCmd.Flags().Float64Var(&opts.lowHz, "band-low", 0, "band-pass lower bound in Hz (0 = none)")
	rootCmd.Flags().Float64Var(&opts.highHz, "band-high", 0, "band-pass upper bound in Hz (0 = none)")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	_ = rootCmd.MarkFlagRequired("base")
	_ = rootCmd.MarkFlagRequired("track")

	if err := rootCmd.Execute(); err != nil {
		logging.Error(err, "alignment failed")
		os.Exit(1)
	}
}

func run(opts *options) error {
	if opts.verbose {
		logging.SetLevel(logging.DebugLevel)
	}
	logger := logging.WithFields(logging.Fields{
		"component": "sonido-align",
	})

	base, err := loadWAVMono(opts.basePath)
	if err != nil {
		return err
	}
	track, err := loadWAVMono(opts.trackPath)
	if err != nil {
		return err
	}

	logger.Info("loaded audio", logging.Fields{
		"base_samples":  len(base.samples),
		"base_rate":     base.rate,
		"base_rms":      common.RMS(base.samples),
		"base_peak":     common.MaxAbs(base.samples),
		"track_samples": len(track.samples),
		"track_rate":    track.rate,
		"track_rms":     common.RMS(track.samples),
		"track_peak":    common.MaxAbs(track.samples),
	})

	preset, err := resample.ParsePreset(opts.quality)
	if err != nil {
		return err
	}

	session, err := align.NewWithConfig(&align.Config{
		BaseSampleRate: base.rate,
		Workers:        opts.threads,
		Resampler:      resample.NewSincProviderQuality(preset),
	})
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	if opts.lowHz > 0 || opts.highHz > 0 {
		bp := filters.NewBandPass(base.rate, opts.lowHz, opts.highHz)
		if err := session.AddFrequentialFilter(bp.Apply, nil); err != nil {
			return err
		}
	}
	if opts.phat {
		pt := filters.NewPhaseTransform()
		if err := session.AddFrequentialFilter(pt.Apply, nil); err != nil {
			return err
		}
	}

	if err := session.SetBaseAudio(preprocess.FormatFloat64, base.samples, base.rate); err != nil {
		return err
	}

	r, err := session.GetAudioRange(preprocess.FormatFloat64, track.samples, track.rate)
	if err != nil {
		return err
	}

	fmt.Printf("offset: %d samples (%.3f s)\n", r.Offset, float64(r.Offset)/base.rate)
	fmt.Printf("length: %d samples (%.3f s)\n", r.Length, float64(r.Length)/base.rate)
	return nil
}
