package wigfit

import (
	"context"
	"fmt"
)

// Segmentation is a segmenter's output for one frame.
type Segmentation struct {
	Mask *HairMask
	// Confidence is informational; the pipeline never gates on it.
	Confidence float64
}

// Segmenter produces a hair mask for a frame.
type Segmenter interface {
	Segment(ctx context.Context, frame *Frame) (Segmentation, error)
}

// Tracking is a pose tracker's output for one frame.
type Tracking struct {
	Face FaceRegion
	Pose HeadPose
}

// PoseTracker locates the face and estimates the head pose.
type PoseTracker interface {
	Track(ctx context.Context, frame *Frame) (Tracking, error)
}

// FrameResult is the outcome of one pipeline frame.
type FrameResult struct {
	Flatten    FlattenedResult
	Transform  WigTransform
	Quality    AlignmentQuality
	Composited *Frame
}

// Pipeline runs flatten, placement, blending and validation for a stream
// of frames. It remembers the last placement so frames where no head
// contour is found keep the wig where it was and only follow the pose.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	engine   *FlatteningEngine
	adjuster *WigAlignmentAdjuster
	pool     *BufferPool

	last    WigTransform
	hasLast bool
}

// NewPipeline creates a pipeline from cfg with a shared buffer pool.
// Additional engine options are applied after the defaults.
func NewPipeline(cfg Config, opts ...EngineOption) *Pipeline {
	cfg = cfg.Clamped()
	pool := NewBufferPool(WithPoolConfig(cfg))
	engineOpts := append([]EngineOption{WithConfig(cfg), WithBufferPool(pool)}, opts...)
	return &Pipeline{
		engine:   NewFlatteningEngine(engineOpts...),
		adjuster: NewWigAlignmentAdjuster(WithAdjusterConfig(cfg)),
		pool:     pool,
	}
}

// Engine returns the flattening engine.
func (p *Pipeline) Engine() *FlatteningEngine { return p.engine }

// Adjuster returns the alignment adjuster.
func (p *Pipeline) Adjuster() *WigAlignmentAdjuster { return p.adjuster }

// BufferPool returns the shared scratch pool.
func (p *Pipeline) BufferPool() *BufferPool { return p.pool }

// Reset forgets the previous placement.
func (p *Pipeline) Reset() {
	p.last = WigTransform{}
	p.hasLast = false
}

// Composite runs one frame with a known mask, face box and pose.
func (p *Pipeline) Composite(frame *Frame, mask *HairMask, face FaceRegion, pose HeadPose, wig *Frame) FrameResult {
	res := p.engine.ApplyFlattening(frame, mask, face)

	var wigSize Size
	if wig != nil {
		wigSize = wig.Size()
	}

	var t WigTransform
	if p.hasLast && p.last.WigSize == wigSize && IsSyntheticContour(res.HeadContour, face) {
		t = p.adjuster.UpdateForHeadRotation(p.last, pose)
	} else {
		t = p.adjuster.CalculateWigPosition(res.HeadContour, wigSize, pose)
	}
	p.last, p.hasLast = t, true

	out := FrameResult{
		Flatten:    res,
		Transform:  t,
		Composited: p.adjuster.BlendWigEdges(wig, res.Image, t),
		Quality:    p.adjuster.ValidateAlignment(wig, res.Image, t),
	}

	p.pool.EvictIdle(0)
	return out
}

// Render segments and tracks frame, then composites wig onto it.
// Only collaborator failures and context cancellation are returned.
func (p *Pipeline) Render(ctx context.Context, frame *Frame, wig *Frame, seg Segmenter, tracker PoseTracker) (FrameResult, error) {
	if err := ctx.Err(); err != nil {
		return FrameResult{}, err
	}
	s, err := seg.Segment(ctx, frame)
	if err != nil {
		return FrameResult{}, fmt.Errorf("segment: %w", err)
	}
	tr, err := tracker.Track(ctx, frame)
	if err != nil {
		return FrameResult{}, fmt.Errorf("track: %w", err)
	}
	Logger().Debug("pipeline: frame inputs ready",
		"confidence", s.Confidence, "face", tr.Face)
	return p.Composite(frame, s.Mask, tr.Face, tr.Pose, wig), nil
}

// Close releases the engine's GPU resources and clears the pool.
func (p *Pipeline) Close() {
	p.engine.Dispose()
	p.pool.Clear()
}
