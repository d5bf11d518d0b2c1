// Package lensshading builds per-channel lens shading compensation grids
// from raw Bayer captures produced by the Raspberry Pi camera pipeline.
//
// The input is either a bare BRCM raw buffer or a JPEG+RAW capture (as
// written by raspistill with raw output enabled), ideally shot against a
// plain, uniformly lit scene. The packed 10-bit Bayer mosaic is split into
// its four sub-channels, corrected for the sensor black level, and sampled
// on a coarse grid of gain values relative to the image centre. The
// resulting table is emitted in the layout the camera firmware expects,
// alongside raw per-channel dumps for inspection.
package lensshading
