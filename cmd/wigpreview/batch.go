package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/wigfit"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type batchFlags struct {
	Frames string
	Masks  string
	Wig    string
	Output string
	Quiet  bool
}

func newBatchCmd(opts *options) *cobra.Command {
	bf := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Composite a wig onto every frame in a directory",
		Long: "Composite a wig onto every image in --frames. Each frame needs a mask\n" +
			"with the same file name in --masks. Frames without a detectable head\n" +
			"contour keep the previous frame's placement.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, bf)
		},
	}
	cmd.Flags().StringVar(&bf.Frames, "frames", "", "Directory of frame images")
	cmd.Flags().StringVar(&bf.Masks, "masks", "", "Directory of hair masks named like the frames")
	cmd.Flags().StringVarP(&bf.Wig, "wig", "w", "", "Wig image with alpha")
	cmd.Flags().StringVarP(&bf.Output, "output", "o", "out", "Output directory")
	cmd.Flags().BoolVarP(&bf.Quiet, "quiet", "q", false, "Hide the progress bar")
	_ = cmd.MarkFlagRequired("frames")
	_ = cmd.MarkFlagRequired("masks")
	_ = cmd.MarkFlagRequired("wig")
	return cmd
}

// maskDirSegmenter serves precomputed masks from a directory.
type maskDirSegmenter struct {
	dir  string
	name string // file name of the frame being segmented
}

func (s *maskDirSegmenter) Segment(_ context.Context, frame *wigfit.Frame) (wigfit.Segmentation, error) {
	m, err := loadMask(filepath.Join(s.dir, s.name), frame.Width(), frame.Height())
	if err != nil {
		return wigfit.Segmentation{}, err
	}
	return wigfit.Segmentation{Mask: m, Confidence: 1}, nil
}

// staticTracker reports a fixed pose and a face box from the flags or
// estimated from the current mask.
type staticTracker struct {
	opts *options
	pose wigfit.HeadPose
	seg  *maskDirSegmenter
}

func (t *staticTracker) Track(ctx context.Context, frame *wigfit.Frame) (wigfit.Tracking, error) {
	if t.opts.Face != "" {
		face, err := parseFace(t.opts.Face)
		return wigfit.Tracking{Face: face, Pose: t.pose}, err
	}
	s, err := t.seg.Segment(ctx, frame)
	if err != nil {
		return wigfit.Tracking{}, err
	}
	return wigfit.Tracking{Face: estimateFace(s.Mask), Pose: t.pose}, nil
}

// batchStats summarizes a batch run.
type batchStats struct {
	Frames    int
	GPUFrames int
	GapFrames int
}

func runBatch(ctx context.Context, out, progress io.Writer, opts *options, bf *batchFlags) error {
	names, err := listImages(bf.Frames)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no images in %s", bf.Frames)
	}
	if err := os.MkdirAll(bf.Output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	wig, err := loadWig(bf.Wig, opts.WigMaxWidth)
	if err != nil {
		return err
	}
	pose, err := opts.pose()
	if err != nil {
		return err
	}

	first, err := loadFrame(filepath.Join(bf.Frames, names[0]))
	if err != nil {
		return err
	}
	p, err := opts.newPipeline(first.Width(), first.Height())
	if err != nil {
		return err
	}
	defer p.Close()

	seg := &maskDirSegmenter{dir: bf.Masks}
	tracker := &staticTracker{opts: opts, pose: pose, seg: seg}

	if bf.Quiet {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(names),
		progressbar.OptionSetDescription("Compositing"),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowCount(),
	)

	var stats batchStats
	for _, name := range names {
		frame, err := loadFrame(filepath.Join(bf.Frames, name))
		if err != nil {
			return err
		}
		seg.name = name
		res, err := p.Render(ctx, frame, wig, seg, tracker)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := saveFrame(res.Composited, filepath.Join(bf.Output, outputName(name))); err != nil {
			return err
		}

		stats.Frames++
		if res.Flatten.UsedGPU {
			stats.GPUFrames++
		}
		if res.Quality.HasGaps {
			stats.GapFrames++
			wigfit.Logger().Warn("wigpreview: gaps at wig edge", "frame", name)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	ps := p.BufferPool().Stats()
	fmt.Fprintf(out, "\n%d frames written to %s (gpu %d, with gaps %d, pool hits %d misses %d)\n",
		stats.Frames, bf.Output, stats.GPUFrames, stats.GapFrames, ps.Hits, ps.Misses)
	return nil
}

var imageExts = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".gif"}

// listImages returns the sorted image file names in dir.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(imageExts, strings.ToLower(filepath.Ext(e.Name()))) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// outputName keeps the frame's base name and writes PNG.
func outputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
}
