package main

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/wigfit"
	"github.com/spf13/cobra"
)

// options holds the flags shared by render and batch.
type options struct {
	Verbose     bool
	Mode        string
	Volume      float64
	BlendRadius int
	BlendWidth  int
	ScalpRadius int
	UseGPU      bool
	Face        string
	Pose        string
	WigMaxWidth int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:     "wigpreview",
		Short:   "Composite a wig onto portraits with hair flattening",
		Version: wigfit.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, opts.Verbose)
		},
		SilenceUsage: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&opts.Mode, "mode", wigfit.ModeFlattened.String(), "Flatten mode: normal, flattened, bald")
	pf.Float64Var(&opts.Volume, "volume", wigfit.DefaultVolumeReduction, "Volume reduction for flattened mode (0.6-0.8)")
	pf.IntVar(&opts.BlendRadius, "blend-radius", wigfit.DefaultBlendRadius, "Flatten edge smoothing radius in pixels (min 5)")
	pf.IntVar(&opts.BlendWidth, "blend-width", wigfit.DefaultBlendWidth, "Wig edge taper width in pixels (min 10)")
	pf.IntVar(&opts.ScalpRadius, "scalp-radius", wigfit.DefaultScalpSampleRadius, "Bald mode scalp sampling radius")
	pf.BoolVar(&opts.UseGPU, "gpu", false, "Use the GPU accelerator when available")
	pf.StringVar(&opts.Face, "face", "", "Face box as x,y,w,h (default: estimated from the mask)")
	pf.StringVar(&opts.Pose, "pose", "0,0,0", "Head rotation in degrees as pitch,yaw,roll")
	pf.IntVar(&opts.WigMaxWidth, "wig-max-width", 0, "Downscale the wig to at most this width before placement")

	root.AddCommand(newRenderCmd(opts), newBatchCmd(opts), newGPUInfoCmd(opts))
	return root
}

// setupLogging routes wigfit logs to stderr.
func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	wigfit.SetLogger(slog.New(h))
}

// config maps the flags onto a pipeline configuration.
func (o *options) config() (wigfit.Config, error) {
	if _, err := wigfit.ParseMode(o.Mode); err != nil {
		return wigfit.Config{}, err
	}
	cfg := wigfit.DefaultConfig()
	cfg.VolumeReduction = o.Volume
	cfg.BlendRadius = o.BlendRadius
	cfg.BlendWidth = o.BlendWidth
	cfg.ScalpSampleRadius = o.ScalpRadius
	return cfg.Clamped(), nil
}

// newPipeline builds a pipeline in the selected mode and initializes it
// for frames of the given size.
func (o *options) newPipeline(width, height int) (*wigfit.Pipeline, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	mode, _ := wigfit.ParseMode(o.Mode)
	p := wigfit.NewPipeline(cfg, wigfit.WithMode(mode))
	p.Engine().Initialize(width, height, o.UseGPU)
	if o.UseGPU && !p.Engine().GPUActive() {
		wigfit.Logger().Warn("GPU requested but not active, using CPU")
	}
	return p, nil
}

// pose parses the --pose flag.
func (o *options) pose() (wigfit.HeadPose, error) {
	v, err := parseFloats(o.Pose, 3)
	if err != nil {
		return wigfit.HeadPose{}, fmt.Errorf("--pose: %w", err)
	}
	return wigfit.HeadPose{Rotation: wigfit.Vec3{X: v[0], Y: v[1], Z: v[2]}}, nil
}
