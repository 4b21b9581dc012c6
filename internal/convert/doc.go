// Package convert orchestrates a conversion end to end: validate the request,
// run ffmpeg into scratch space, apply the optional gifsicle pass, move the
// finished GIF into place, and record the outcome. All signal processing
// happens inside the external tools; this package only sequences them.
package convert
