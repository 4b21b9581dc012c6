// Package gifbuild maps a conversion request onto the argument lists for the
// external tools that do the actual work.
//
// It owns the ffmpeg filter-graph construction (fps resampling, width-bounded
// Lanczos scaling, palettegen/paletteuse with configurable dithering), the
// input-level trim placement that keeps palette analysis aligned with the
// emitted frames, and the gifsicle optimization invocation. Everything here is
// pure: validation and argument assembly happen before any process is spawned.
package gifbuild
