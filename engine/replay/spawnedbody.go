package replay

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SpawnedBodySize is the fixed encoded width of one SpawnedBody record.
const SpawnedBodySize = 26

// Vec is a fixed-size two-component vector sub-record.
type Vec struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// SpawnedBody is the compact record emitted whenever a body enters the
// simulation. It encodes to exactly SpawnedBodySize little-endian bytes so
// archived streams stay random-accessible by index.
//
// Layout: id int32, team int8, type uint8, radius float32, loc Vec, vel Vec.
type SpawnedBody struct {
	ID     int32   `json:"id"`
	Team   int8    `json:"team"`
	Type   uint8   `json:"type"`
	Radius float32 `json:"radius"`
	Loc    Vec     `json:"loc"`
	Vel    Vec     `json:"vel"`
}

// AppendTo appends the fixed-width encoding of b to buf and returns the
// extended slice.
func (b SpawnedBody) AppendTo(buf []byte) []byte {
	var rec [SpawnedBodySize]byte
	binary.LittleEndian.PutUint32(rec[0:4], uint32(b.ID))
	rec[4] = byte(b.Team)
	rec[5] = b.Type
	binary.LittleEndian.PutUint32(rec[6:10], math.Float32bits(b.Radius))
	binary.LittleEndian.PutUint32(rec[10:14], math.Float32bits(b.Loc.X))
	binary.LittleEndian.PutUint32(rec[14:18], math.Float32bits(b.Loc.Y))
	binary.LittleEndian.PutUint32(rec[18:22], math.Float32bits(b.Vel.X))
	binary.LittleEndian.PutUint32(rec[22:26], math.Float32bits(b.Vel.Y))
	return append(buf, rec[:]...)
}

// MarshalBinary encodes b as SpawnedBodySize little-endian bytes.
func (b SpawnedBody) MarshalBinary() ([]byte, error) {
	return b.AppendTo(make([]byte, 0, SpawnedBodySize)), nil
}

// UnmarshalBinary decodes a record previously produced by MarshalBinary.
func (b *SpawnedBody) UnmarshalBinary(data []byte) error {
	if len(data) < SpawnedBodySize {
		return fmt.Errorf("replay: SpawnedBody needs %d bytes, have %d", SpawnedBodySize, len(data))
	}
	b.ID = int32(binary.LittleEndian.Uint32(data[0:4]))
	b.Team = int8(data[4])
	b.Type = data[5]
	b.Radius = math.Float32frombits(binary.LittleEndian.Uint32(data[6:10]))
	b.Loc.X = math.Float32frombits(binary.LittleEndian.Uint32(data[10:14]))
	b.Loc.Y = math.Float32frombits(binary.LittleEndian.Uint32(data[14:18]))
	b.Vel.X = math.Float32frombits(binary.LittleEndian.Uint32(data[18:22]))
	b.Vel.Y = math.Float32frombits(binary.LittleEndian.Uint32(data[22:26]))
	return nil
}

// DecodeAt decodes record i from a packed buffer of fixed-width records.
func DecodeAt(buf []byte, i int) (SpawnedBody, error) {
	var b SpawnedBody
	if i < 0 {
		return b, fmt.Errorf("replay: record index %d out of range", i)
	}
	off := i * SpawnedBodySize
	if off+SpawnedBodySize > len(buf) {
		return b, fmt.Errorf("replay: record index %d out of range for %d bytes", i, len(buf))
	}
	err := b.UnmarshalBinary(buf[off : off+SpawnedBodySize])
	return b, err
}
