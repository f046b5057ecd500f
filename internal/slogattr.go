package internal

import (
	"encoding/binary"
	"log/slog"
)

// SlogAddr6 returns a slog.Attr for a 6-byte hardware (MAC) address
// packed into a uint64 without allocating a string.
func SlogAddr6(key string, addr *[6]byte) slog.Attr {
	var buf [8]byte
	copy(buf[2:], addr[:])
	u64Addr := binary.BigEndian.Uint64(buf[:])
	return slog.Uint64(key, u64Addr)
}

// SlogSlot returns the attributes that identify a descriptor ring slot
// and its first status word.
func SlogSlot(index int, word0 uint32) slog.Attr {
	return slog.Group("slot", slog.Int("i", index), slog.Uint64("w0", uint64(word0)))
}
