// Package capture produces the image bytes a scan starts from.
//
// Two sources exist. FromFile and FromReader cover the file picker: the
// payload is sniffed and anything that is not an image is rejected. Camera
// covers the live viewfinder: it owns at most one open Stream from a Device,
// encodes the current frame as JPEG on Shutter, and releases every track on
// Switch and Close. HTTPSnapshotDevice is the Device used by the CLI; it pulls
// frames from IP camera snapshot URLs.
package capture
