// Package gifsicle runs the optional gifsicle re-compression pass over a
// finished GIF. The converter constructs a client only when the binary is
// present, so a missing optimizer degrades to a warning rather than an error.
package gifsicle
