package dma

//go:generate stringer -type=errGeneric -linecomment -output stringers.go .

type errGeneric uint8

// Errors returned by the descriptor engines. RX frame errors are never
// returned, see [RxEngine.Poll].
const (
	_               errGeneric = iota // non-initialized err
	ErrNoDescriptor                   // no TX descriptor available
	ErrTxTimeout                      // TX completion timeout
	ErrFrameTooLong                   // frame exceeds descriptor length field
	ErrShortBuffer                    // buffer too short
	ErrNoPacket                       // no received packet to release
	ErrRingLength                     // ring length not a power of two
	ErrDescSize                       // descriptor size not a multiple of 16 bytes
	ErrEndOfRing                      // invalid end-of-ring bit
	ErrArenaFull                      // DMA arena exhausted
)

func (err errGeneric) Error() string {
	return "dma: " + err.String()
}
