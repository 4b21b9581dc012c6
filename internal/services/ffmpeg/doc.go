// Package ffmpeg launches the external ffmpeg binary with argument lists
// prepared by gifbuild. It owns no conversion logic of its own; the Executor
// seam lets tests observe invocations without spawning processes.
package ffmpeg
