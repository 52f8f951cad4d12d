package audioprobe_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/simonhull/audioprobe"
)

// createHeaderlessMP3 builds a file that starts with an ID3v2 tag but
// contains no MP3 frame sync at all.
func createHeaderlessMP3() []byte {
	buf := &bytes.Buffer{}
	buf.Write([]byte{'I', 'D', '3', 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10})
	buf.Write(make([]byte, 200))
	return buf.Bytes()
}

func TestInspect_FLAC(t *testing.T) {
	data := createMinimalFLAC()
	path := writeFile(t, "track.flac", data)

	outcome := audioprobe.Inspect(path, ".flac", int64(len(data)))

	if outcome.Err != "" {
		t.Fatalf("unexpected error record: %q", outcome.Err)
	}
	if outcome.Report == nil {
		t.Fatal("expected a report")
	}
	if outcome.UsedFallback {
		t.Error("extension dispatch should not have used the fallback")
	}

	if outcome.Report.Duration != "0:01" {
		t.Errorf("Duration = %q, expected %q", outcome.Report.Duration, "0:01")
	}
	if outcome.Report.Channels != "Stereo" {
		t.Errorf("Channels = %q, expected %q", outcome.Report.Channels, "Stereo")
	}
	if outcome.Report.SampleRate != "44100 Hz" {
		t.Errorf("SampleRate = %q, expected %q", outcome.Report.SampleRate, "44100 Hz")
	}

	if !outcome.HasRawLength {
		t.Fatal("expected a raw length")
	}
	if outcome.RawLength != 1.0 {
		t.Errorf("RawLength = %v, expected 1.0", outcome.RawLength)
	}
}

func TestInspect_FallbackOnMislabeledFile(t *testing.T) {
	// FLAC bytes behind an .m4a extension: the extension-dispatched parse
	// finds no atoms and comes back empty, the generic retry wins.
	data := createMinimalFLAC()
	path := writeFile(t, "mislabeled.m4a", data)

	outcome := audioprobe.Inspect(path, ".m4a", int64(len(data)))

	if outcome.Err != "" {
		t.Fatalf("unexpected error record: %q", outcome.Err)
	}
	if outcome.Report == nil {
		t.Fatal("expected a report")
	}
	if !outcome.UsedFallback {
		t.Error("expected the fallback parse to produce the result")
	}
	if outcome.Report.SampleRate != "44100 Hz" {
		t.Errorf("SampleRate = %q, expected %q", outcome.Report.SampleRate, "44100 Hz")
	}
}

func TestInspect_UnknownExtension(t *testing.T) {
	data := createMinimalFLAC()
	path := writeFile(t, "download.tmp", data)

	outcome := audioprobe.Inspect(path, ".tmp", int64(len(data)))

	if outcome.Err != "" {
		t.Fatalf("unexpected error record: %q", outcome.Err)
	}
	// Magic-byte detection is the primary attempt here, not a fallback
	if outcome.UsedFallback {
		t.Error("unknown extension routes through detection without counting as fallback")
	}
}

func TestInspect_MP3HeadersNotFound(t *testing.T) {
	data := createHeaderlessMP3()
	path := writeFile(t, "silence.mp3", data)

	outcome := audioprobe.Inspect(path, ".mp3", 5242880)

	if outcome.Err != "" {
		t.Fatalf("headers-not-found must be a reportable outcome, got error %q", outcome.Err)
	}
	if outcome.Report == nil {
		t.Fatal("expected a degraded report")
	}
	if !outcome.HeadersNotFound {
		t.Error("expected HeadersNotFound to be set")
	}

	if outcome.Report.FileSize != "5.00 MB" {
		t.Errorf("FileSize = %q, expected %q", outcome.Report.FileSize, "5.00 MB")
	}
	if outcome.Report.Duration != "Unknown (headers not found)" {
		t.Errorf("Duration = %q, expected %q", outcome.Report.Duration, "Unknown (headers not found)")
	}
	for _, field := range outcome.Report.Fields()[2:] {
		if field.Value != "Unknown" {
			t.Errorf("%s = %q, expected %q", field.Key, field.Value, "Unknown")
		}
	}
	if outcome.HasRawLength {
		t.Error("degraded outcome must not carry a raw length")
	}
}

func TestInspect_BothAttemptsEmpty(t *testing.T) {
	// An M4A with no movie header parses cleanly but yields nothing, from
	// both the extension-dispatched attempt and the generic retry.
	data := createEmptyM4A()
	path := writeFile(t, "hollow.m4a", data)

	outcome := audioprobe.Inspect(path, ".m4a", int64(len(data)))

	if outcome.Report != nil {
		t.Fatalf("expected no report, got %+v", outcome.Report)
	}
	expected := "Could not extract metadata. The file may have non-standard formatting or may not be a valid audio file."
	if outcome.Err != expected {
		t.Errorf("Err = %q, expected %q", outcome.Err, expected)
	}
}

func TestInspect_UnexpectedFailure(t *testing.T) {
	outcome := audioprobe.Inspect("/nonexistent/path.flac", ".flac", 0)

	if outcome.Report != nil {
		t.Fatal("expected no report for unreadable file")
	}
	if !strings.HasPrefix(outcome.Err, "Error extracting metadata: ") {
		t.Errorf("Err = %q, expected an extraction error record", outcome.Err)
	}
}

func TestInspect_ReportAndErrExclusive(t *testing.T) {
	data := createMinimalFLAC()
	good := audioprobe.Inspect(writeFile(t, "a.flac", data), ".flac", int64(len(data)))
	bad := audioprobe.Inspect(writeFile(t, "b.m4a", createEmptyM4A()), ".m4a", 0)

	if good.Report == nil || good.Err != "" {
		t.Errorf("success outcome malformed: report=%v err=%q", good.Report, good.Err)
	}
	if bad.Report != nil || bad.Err == "" {
		t.Errorf("failure outcome malformed: report=%v err=%q", bad.Report, bad.Err)
	}
}
