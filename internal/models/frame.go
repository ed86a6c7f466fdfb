package models

import "time"

// RawFrame is one decoded video frame. Ownership transfers from the capture
// loop to the detection loop; frames evicted from the buffer are discarded.
type RawFrame struct {
	CameraID  string
	Data      []byte
	Timestamp time.Time
	FrameID   int64
	Width     int
	Height    int
	Format    string
}
