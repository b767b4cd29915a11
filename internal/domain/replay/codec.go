package replay

import (
	"encoding/binary"
	"errors"
	"math"
)

// Binary layout: an 8-byte little-endian IEEE-754 double holding the
// frame rate, followed by 6-byte records:
//
//	[int32 LE frame][uint8 flags][uint8 reserved]
//
// flags bit 0: press (1) / release (0)
// flags bit 1: secondary identity
//
// The reserved byte is padding and ignored on read. The format has no
// version field and no trailer; a trailing partial record is dropped.
const (
	headerSize = 8
	recordSize = 6

	flagDown        = 1 << 0
	flagAltIdentity = 1 << 1
)

// ErrShortBlob is returned when the input is too short to hold the
// frame-rate header.
var ErrShortBlob = errors.New("replay: blob shorter than header")

// Decode parses a replay blob. The name is supplied by the caller (it
// is not part of the payload). Decode is a pure function of its inputs:
// it never validates frame ordering and never deduplicates frames.
func Decode(name string, data []byte) (*Replay, error) {
	if len(data) < headerSize {
		return nil, ErrShortBlob
	}

	fps := math.Float64frombits(binary.LittleEndian.Uint64(data[:headerSize]))

	body := data[headerSize:]
	events := make([]Event, 0, len(body)/recordSize)
	for len(body) >= recordSize {
		frame := int32(binary.LittleEndian.Uint32(body[:4]))
		flags := body[4]
		events = append(events, Event{
			Frame:       int64(frame),
			Down:        flags&flagDown != 0,
			AltIdentity: flags&flagAltIdentity != 0,
		})
		body = body[recordSize:]
	}

	return &Replay{
		Name:   name,
		FPS:    fps,
		Events: events,
	}, nil
}
