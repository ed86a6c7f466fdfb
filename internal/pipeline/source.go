package pipeline

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"vulcan-monitor-go/internal/models"
)

// StreamProps are the static properties of an opened stream, recorded once
// at open time and immutable for the pipeline's lifetime.
type StreamProps struct {
	Width  int
	Height int
	FPS    float64
}

// FrameSource produces raw frames from a camera, stream URL or video file.
type FrameSource interface {
	// Open acquires the underlying handle and reports the stream properties.
	Open() (StreamProps, error)
	// Read blocks until the next frame is available or the source fails.
	Read() (*models.RawFrame, error)
	// Close releases the handle. Safe to call when not open.
	Close() error
}

// VideoSource is a FrameSource backed by OpenCV VideoCapture. The source
// string may be a device index ("0"), a file path or an RTSP URL.
type VideoSource struct {
	cameraID string
	source   string

	cap     *gocv.VideoCapture
	img     gocv.Mat
	frameID int64
}

// NewVideoSource creates an unopened VideoSource for the given camera.
func NewVideoSource(cameraID, source string) *VideoSource {
	return &VideoSource{
		cameraID: cameraID,
		source:   source,
	}
}

func (s *VideoSource) Open() (StreamProps, error) {
	cap, err := gocv.OpenVideoCapture(s.source)
	if err != nil {
		return StreamProps{}, fmt.Errorf("open video source %s: %w", s.source, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return StreamProps{}, fmt.Errorf("video source %s is not opened", s.source)
	}

	// Minimal driver-side buffering keeps frames close to real time.
	cap.Set(gocv.VideoCaptureBufferSize, 1)

	s.cap = cap
	s.img = gocv.NewMat()

	return StreamProps{
		Width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    cap.Get(gocv.VideoCaptureFPS),
	}, nil
}

func (s *VideoSource) Read() (*models.RawFrame, error) {
	if s.cap == nil {
		return nil, fmt.Errorf("video source %s is not open", s.source)
	}

	if ok := s.cap.Read(&s.img); !ok {
		return nil, fmt.Errorf("read frame from %s failed", s.source)
	}
	if s.img.Empty() {
		return nil, fmt.Errorf("empty frame from %s", s.source)
	}

	s.frameID++
	return &models.RawFrame{
		CameraID:  s.cameraID,
		Data:      s.img.ToBytes(),
		Timestamp: time.Now(),
		FrameID:   s.frameID,
		Width:     s.img.Cols(),
		Height:    s.img.Rows(),
		Format:    "BGR24",
	}, nil
}

func (s *VideoSource) Close() error {
	if s.cap == nil {
		return nil
	}
	s.img.Close()
	err := s.cap.Close()
	s.cap = nil
	return err
}
