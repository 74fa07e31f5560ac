package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// ErrNoCode is what a decoder returns for a frame with no readable QR
// symbol; the capture loop treats it as "keep looking".
var ErrNoCode = errors.New("no qr code in frame")

// FrameSource is an exclusive capture device producing image frames. Close
// releases the device and must always be called exactly once.
type FrameSource interface {
	NextFrame(ctx context.Context) ([]byte, error)
	Close() error
}

// FrameDecoder turns raw image bytes into credential text. The decoding
// algorithm itself is somebody else's problem; deployments inject one.
type FrameDecoder interface {
	Decode(frame []byte) (string, error)
}

// CaptureSession owns one device for the duration of one scan attempt.
type CaptureSession struct {
	ID  string
	src FrameSource
	dec FrameDecoder
}

func NewCaptureSession(src FrameSource, dec FrameDecoder) *CaptureSession {
	return &CaptureSession{ID: uuid.NewString(), src: src, dec: dec}
}

// Run pulls frames until one decodes, the context is canceled, or the source
// fails. Every exit path releases the device; leaking a camera handle means
// nobody scans until someone restarts the kiosk. The session id ties the
// journal entries of one scan attempt together.
func (s *CaptureSession) Run(ctx context.Context) (string, error) {
	defer s.src.Close()
	slog.Info("capture started", "component", "capture", "session", s.ID)

	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			slog.Info("capture canceled", "component", "capture", "session", s.ID, "frames", frames)
			return "", err
		}
		frame, err := s.src.NextFrame(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				slog.Info("capture canceled", "component", "capture", "session", s.ID, "frames", frames)
			} else {
				slog.Warn("capture source failed", "component", "capture", "session", s.ID, "frames", frames, "err", err)
			}
			return "", err
		}
		frames++
		text, err := s.dec.Decode(frame)
		if errors.Is(err, ErrNoCode) {
			continue
		}
		if err != nil {
			slog.Warn("capture decode failed", "component", "capture", "session", s.ID, "frames", frames, "err", err)
			return "", err
		}
		slog.Info("capture decoded", "component", "capture", "session", s.ID, "frames", frames)
		return text, nil
	}
}

// DecodeStill runs one uploaded image through a decoder. No device to own;
// NotFound surfaces as an unrecognized credential to the caller.
func DecodeStill(dec FrameDecoder, image []byte) (string, error) {
	text, err := dec.Decode(image)
	if errors.Is(err, ErrNoCode) {
		return "", ErrUnrecognizedFormat
	}
	if err != nil {
		return "", err
	}
	return text, nil
}
