package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ayusman/airpaint/internal/detector"
)

// TrackFrame is one recorded tick: the primary hand handed to the engine,
// or nil when none was detected.
type TrackFrame struct {
	Tick   uint64                  `json:"tick"`
	TimeMs int64                   `json:"time_ms"`
	Width  int                     `json:"width"`
	Height int                     `json:"height"`
	Hand   *detector.HandLandmarks `json:"hand,omitempty"`
}

// TrackWriter appends frames as JSON lines.
type TrackWriter struct {
	buf    *bufio.Writer
	enc    *json.Encoder
	closer io.Closer
}

// CreateTrack creates (or truncates) a track file at path.
func CreateTrack(path string) (*TrackWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create track: %w", err)
	}
	t := NewTrackWriter(f)
	t.closer = f
	return t, nil
}

// NewTrackWriter writes frames to w.
func NewTrackWriter(w io.Writer) *TrackWriter {
	buf := bufio.NewWriter(w)
	return &TrackWriter{buf: buf, enc: json.NewEncoder(buf)}
}

// Write appends one frame.
func (t *TrackWriter) Write(f TrackFrame) error {
	return t.enc.Encode(f)
}

// Close flushes buffered frames and closes the underlying file, if any.
func (t *TrackWriter) Close() error {
	if err := t.buf.Flush(); err != nil {
		return fmt.Errorf("flush track: %w", err)
	}
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// TrackReader reads frames written by TrackWriter.
type TrackReader struct {
	dec   *json.Decoder
	count int
}

// NewTrackReader reads frames from r.
func NewTrackReader(r io.Reader) *TrackReader {
	return &TrackReader{dec: json.NewDecoder(r)}
}

// Next returns the next frame, or io.EOF after the last one.
func (t *TrackReader) Next() (TrackFrame, error) {
	var f TrackFrame
	if err := t.dec.Decode(&f); err != nil {
		if err == io.EOF {
			return f, io.EOF
		}
		return f, fmt.Errorf("track frame %d: %w", t.count+1, err)
	}
	t.count++
	return f, nil
}
