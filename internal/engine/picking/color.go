package picking

// MaxID is the largest ID that fits in an RGB8 colour.
const MaxID = 1<<24 - 1

// EncodeID packs an ID into an RGB colour with components in [0, 1].
func EncodeID(id int) [3]float32 {
	if id < 0 || id > MaxID {
		id = 0
	}
	return [3]float32{
		float32(id&0xFF) / 255,
		float32((id>>8)&0xFF) / 255,
		float32((id>>16)&0xFF) / 255,
	}
}

// DecodeID recovers the ID from a pixel read back from the pick buffer.
func DecodeID(r, g, b uint8) int {
	return int(r) | int(g)<<8 | int(b)<<16
}
