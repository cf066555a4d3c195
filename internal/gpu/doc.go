//go:build !nogpu

// Package gpu implements the compute-shader flatten accelerator for wigfit.
//
// The accelerator runs the flatten transform as two compute passes recorded
// into one command buffer:
//
//  1. transform_main darkens hair (Flattened) or fills it with the local
//     scalp color (Bald) into an intermediate buffer
//  2. smooth_main blurs the mask transition band into the output buffer
//
// Frames are uploaded as packed RGBA8 storage buffers, the mask as one u32
// per pixel. Submission is a blocking round trip: submit, wait on a fence,
// read back. Device resources are sized per frame dimension and reused
// across frames of the same size.
//
// The shader is WGSL compiled to SPIR-V with naga and runs on the Vulkan
// backend of gogpu/wgpu, or on a device shared by the host through
// SetDeviceProvider.
package gpu
