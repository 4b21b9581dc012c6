// Package ffprobe shells out to ffprobe to read source dimensions, frame
// rate, and duration. The converter uses it for reporting and the probe
// command; the actual conversion never depends on its availability.
package ffprobe
