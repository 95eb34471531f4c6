package transcriber

import (
	"bytes"
	"encoding/binary"
)

// encodeWAV packs float32 samples into a mono 16-bit PCM WAV byte slice for
// multipart upload. Samples are clamped to [-1, 1].
func encodeWAV(samples []float32, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	buf.WriteString("RIFF")
	writeUint32LE(buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeUint32LE(buf, 16)
	writeUint16LE(buf, 1) // PCM
	writeUint16LE(buf, 1) // mono
	writeUint32LE(buf, uint32(sampleRate))
	writeUint32LE(buf, uint32(sampleRate*2))
	writeUint16LE(buf, 2)  // block align
	writeUint16LE(buf, 16) // bits per sample

	buf.WriteString("data")
	writeUint32LE(buf, uint32(dataSize))

	for _, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		writeInt16LE(buf, int16(s*32767))
	}

	return buf.Bytes()
}

func writeUint16LE(w *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

func writeUint32LE(w *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

func writeInt16LE(w *bytes.Buffer, v int16) {
	writeUint16LE(w, uint16(v))
}
