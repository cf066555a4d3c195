package main

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/wigfit"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	Input  string
	Mask   string
	Wig    string
	Output string
	Stage  string
}

func newRenderCmd(opts *options) *cobra.Command {
	rf := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Composite a wig onto one portrait",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.OutOrStdout(), opts, rf)
		},
	}
	cmd.Flags().StringVarP(&rf.Input, "input", "i", "", "Portrait image")
	cmd.Flags().StringVarP(&rf.Mask, "mask", "m", "", "Grayscale hair mask image")
	cmd.Flags().StringVarP(&rf.Wig, "wig", "w", "", "Wig image with alpha")
	cmd.Flags().StringVarP(&rf.Output, "output", "o", "preview.png", "Output image")
	cmd.Flags().StringVar(&rf.Stage, "stage", "composite", "Image to write: composite, flattened, mask")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("mask")
	_ = cmd.MarkFlagRequired("wig")
	return cmd
}

func runRender(out io.Writer, opts *options, rf *renderFlags) error {
	frame, err := loadFrame(rf.Input)
	if err != nil {
		return err
	}
	mask, err := loadMask(rf.Mask, frame.Width(), frame.Height())
	if err != nil {
		return err
	}
	wig, err := loadWig(rf.Wig, opts.WigMaxWidth)
	if err != nil {
		return err
	}
	face, err := opts.faceFor(mask)
	if err != nil {
		return err
	}
	pose, err := opts.pose()
	if err != nil {
		return err
	}

	p, err := opts.newPipeline(frame.Width(), frame.Height())
	if err != nil {
		return err
	}
	defer p.Close()

	res := p.Composite(frame, mask, face, pose, wig)

	img, err := stageImage(res, rf.Stage)
	if err != nil {
		return err
	}
	if err := saveFrame(img, rf.Output); err != nil {
		return err
	}
	printResult(out, rf.Output, p.Engine().Settings().Mode, res)
	return nil
}

// stageImage selects the pipeline stage to write.
func stageImage(res wigfit.FrameResult, stage string) (*wigfit.Frame, error) {
	switch stage {
	case "composite", "":
		return res.Composited, nil
	case "flattened":
		return res.Flatten.Image, nil
	case "mask":
		return maskFrame(res.Flatten.AdjustedMask), nil
	default:
		return nil, fmt.Errorf("unknown stage %q (want composite, flattened or mask)", stage)
	}
}

// maskFrame renders a mask as an opaque grayscale frame.
func maskFrame(m *wigfit.HairMask) *wigfit.Frame {
	f := wigfit.NewFrame(m.Width(), m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			v := m.At(x, y)
			f.SetRGBA(x, y, v, v, v, 255)
		}
	}
	return f
}

func printResult(w io.Writer, path string, mode wigfit.Mode, res wigfit.FrameResult) {
	q := res.Quality
	fmt.Fprintf(w, "wrote %s\n", path)
	fmt.Fprintf(w, "  mode:        %s (gpu=%v, %.1fms)\n",
		mode, res.Flatten.UsedGPU, res.Flatten.ProcessingTimeMs())
	fmt.Fprintf(w, "  position:    (%.1f, %.1f) scale %.3f rotation %.1fdeg\n",
		res.Transform.Position.X, res.Transform.Position.Y, res.Transform.Scale, res.Transform.Rotation*180/math.Pi)
	fmt.Fprintf(w, "  quality:     blend %.3f smoothness %.3f gaps %v\n",
		q.BlendQuality, q.EdgeSmoothness, q.HasGaps)
}
