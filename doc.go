// Package audioprobe answers "what is this audio file, technically?".
//
// Given a local file, audioprobe dispatches a container parser on the file's
// extension, extracts structural audio properties (duration, channel layout,
// sample rate, bitrate), and normalizes them into a small report. Descriptive
// tags (title, artist, etc.) are never read.
//
// # Quick Start
//
//	outcome := audioprobe.Inspect("song.mp3", ".mp3", fileSize)
//	if outcome.Err != "" {
//		log.Fatal(outcome.Err)
//	}
//	for _, f := range outcome.Report.Fields() {
//		fmt.Printf("%s: %s\n", f.Key, f.Value)
//	}
//
// # Supported Formats
//
//   - MP3: frame header scan with Xing/VBRI duration
//   - M4A/MP4/M4B: mvhd/stsd atoms
//   - FLAC: STREAMINFO block
//   - Ogg: Vorbis identification header or OpusHead, granule duration
//   - WAV: RIFF fmt/data chunks
//
// Files with any other (or no) extension go through magic-byte detection -
// the same generic path used as a one-shot fallback when an
// extension-selected parse yields no usable structural info.
//
// # Error Handling
//
// Inspect never panics past its boundary. Every failure mode becomes either
// a degraded report (file size known, musical fields unknown) or an error
// record inside the Outcome. Parsers themselves distinguish fatal structure
// errors from non-fatal ones collected as File.Warnings.
//
// The cmd/audioprobe binary wraps this library with an HTTP fetcher: it
// probes a URL's size, streams the body to a temporary file, inspects it,
// and removes the file on every exit path.
package audioprobe
