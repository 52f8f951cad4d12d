package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/simonhull/audioprobe/internal/types"
)

// createMinimalWAV builds a PCM WAV header: 44.1 kHz, stereo, 16-bit, with a
// data chunk sized to the given playtime. The sample data itself is zeros.
func createMinimalWAV(seconds int) []byte {
	const (
		channels   = 2
		sampleRate = 44100
		bitDepth   = 16
	)
	byteRate := sampleRate * channels * bitDepth / 8
	dataSize := byteRate * seconds

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(channels*bitDepth/8)) // block align
	binary.Write(buf, binary.LittleEndian, uint16(bitDepth))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	return buf.Bytes()
}

func writeTempFile(t *testing.T, data []byte) *os.File {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "wavtest*.wav")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.Write(data); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	return tmpFile
}

func TestParse_MinimalWAV(t *testing.T) {
	data := createMinimalWAV(2)
	tmpFile := writeTempFile(t, data)
	defer tmpFile.Close()

	p := &parser{}
	file, err := p.Parse(tmpFile, int64(len(data)), tmpFile.Name())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if file.Format != types.FormatWAV {
		t.Errorf("Format = %v, expected %v", file.Format, types.FormatWAV)
	}
	if file.Audio.Channels != 2 {
		t.Errorf("Channels = %d, expected 2", file.Audio.Channels)
	}
	if file.Audio.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, expected 44100", file.Audio.SampleRate)
	}
	if file.Audio.BitDepth != 16 {
		t.Errorf("BitDepth = %d, expected 16", file.Audio.BitDepth)
	}
	// 44100 * 2 channels * 16 bits
	if file.Audio.Bitrate != 1411200 {
		t.Errorf("Bitrate = %d, expected 1411200", file.Audio.Bitrate)
	}
	if !file.Audio.HasDuration {
		t.Fatal("expected HasDuration to be set")
	}
	if file.Audio.Duration != 2*time.Second {
		t.Errorf("Duration = %v, expected 2s", file.Audio.Duration)
	}
	if !file.Audio.Lossless || file.Audio.Codec != "PCM" {
		t.Errorf("Codec/Lossless = %q/%v, expected PCM/true", file.Audio.Codec, file.Audio.Lossless)
	}
}

func TestParse_InvalidHeader(t *testing.T) {
	data := []byte("RIFFxxxxJUNK")
	tmpFile := writeTempFile(t, data)
	defer tmpFile.Close()

	p := &parser{}
	_, err := p.Parse(tmpFile, int64(len(data)), tmpFile.Name())
	if err == nil {
		t.Fatal("expected error for non-WAVE RIFF file")
	}

	var corruptErr *types.CorruptedFileError
	if !errors.As(err, &corruptErr) {
		t.Errorf("expected *types.CorruptedFileError, got %T: %v", err, err)
	}
}

func TestParse_MissingDataChunk(t *testing.T) {
	// Header and fmt chunk only - no data means no duration
	data := createMinimalWAV(0)
	tmpFile := writeTempFile(t, data)
	defer tmpFile.Close()

	p := &parser{}
	file, err := p.Parse(tmpFile, int64(len(data)), tmpFile.Name())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if file.Audio.HasDuration {
		t.Error("expected no duration for empty data chunk")
	}
	if file.Audio.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, expected 44100", file.Audio.SampleRate)
	}
}
