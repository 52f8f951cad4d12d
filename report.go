package audioprobe

import (
	"fmt"
	"time"
)

// unknownValue marks a field the parse could not determine.
const unknownValue = "Unknown"

// Report holds the normalized, human-oriented metadata values.
//
// Every field is already formatted for display. FileSize always carries a
// real value (the probe total, "0.00 MB" when the size was unavailable);
// the remaining fields fall back to "Unknown".
type Report struct {
	FileSize   string
	Duration   string
	Channels   string
	SampleRate string
	Bitrate    string
}

// Field is one report entry in display order.
type Field struct {
	Key   string
	Value string
}

// Fields returns the report entries in their canonical display order.
// Keys are snake_case; presentation-layer casing is left to the caller.
func (r *Report) Fields() []Field {
	return []Field{
		{Key: "file_size", Value: r.FileSize},
		{Key: "duration", Value: r.Duration},
		{Key: "channels", Value: r.Channels},
		{Key: "sample_rate", Value: r.SampleRate},
		{Key: "bitrate", Value: r.Bitrate},
	}
}

// newReport normalizes parsed audio info into a Report.
//
// totalSize comes from the fetcher's size probe, never from the parse, so a
// degraded parse still reports a meaningful size.
func newReport(info AudioInfo, totalSize int64) *Report {
	return &Report{
		FileSize:   formatFileSize(totalSize),
		Duration:   formatReportDuration(info.Duration, info.HasDuration),
		Channels:   formatChannels(info.Channels),
		SampleRate: formatSampleRate(info.SampleRate),
		Bitrate:    formatBitrate(info.Bitrate),
	}
}

// formatFileSize renders a byte count as megabytes with two decimals.
// A zero total formats as "0.00 MB"; file size has no unknown state.
func formatFileSize(totalSize int64) string {
	return fmt.Sprintf("%.2f MB", float64(totalSize)/(1024*1024))
}

// formatReportDuration renders a duration as M:SS, truncating (not
// rounding) to whole seconds. Minutes do not roll over into hours.
func formatReportDuration(d time.Duration, present bool) string {
	if !present {
		return unknownValue
	}
	total := int64(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// formatChannels renders a channel count as a layout description.
func formatChannels(channels int) string {
	switch {
	case channels == 1:
		return "Mono"
	case channels == 2:
		return "Stereo"
	case channels > 2:
		return fmt.Sprintf("%d channels", channels)
	default:
		return unknownValue
	}
}

// formatSampleRate renders a sample rate in Hz.
func formatSampleRate(sampleRate int) string {
	if sampleRate <= 0 {
		return unknownValue
	}
	return fmt.Sprintf("%d Hz", sampleRate)
}

// formatBitrate renders a bitrate in kbps using floor division.
// A bitrate of exactly 0 is treated as unknown, not as a real zero.
func formatBitrate(bitrate int) string {
	if bitrate <= 0 {
		return unknownValue
	}
	return fmt.Sprintf("%d kbps", bitrate/1000)
}
