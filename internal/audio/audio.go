// package audio decodes narration payloads and plays one stream at a time.
package audio

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tabernacle/internal/shared"
)

// Format describes interleaved little-endian PCM.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// Speech is the format of narration replies: 16-bit mono at 24 kHz.
var Speech = Format{SampleRate: 24000, Channels: 1, BitsPerSample: 16}

func (f Format) frameSize() int { return f.Channels * f.BitsPerSample / 8 }

// Duration returns the playing time of n bytes of PCM.
func (f Format) Duration(n int) time.Duration {
	perSecond := f.SampleRate * f.frameSize()
	if perSecond == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(perSecond)
}

// DecodeBase64PCM decodes a base64 payload and drops a trailing partial frame.
func DecodeBase64PCM(payload string, f Format) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, shared.ErrEmptyAudio
	}

	pcm, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}

	if fs := f.frameSize(); fs > 0 {
		pcm = pcm[:len(pcm)-len(pcm)%fs]
	}
	if len(pcm) == 0 {
		return nil, shared.ErrEmptyAudio
	}
	return pcm, nil
}

// EncodeWAV wraps PCM in a canonical 44-byte RIFF header.
func EncodeWAV(pcm []byte, f Format) []byte {
	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	blockAlign := f.frameSize()
	byteRate := f.SampleRate * blockAlign

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(f.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(f.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(f.BitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
