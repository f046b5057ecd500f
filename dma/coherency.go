package dma

// CacheLine is the minimum DMA alignment assumed for buffers and descriptor
// rings when the platform does not state otherwise.
const CacheLine = 64

// Coherency keeps CPU and DMA engine views of memory consistent on platforms
// where caches are not snooped by the DMA engine.
type Coherency interface {
	// Flush writes back CPU cached data in r so the DMA engine observes it.
	Flush(r Region)
	// Invalidate discards CPU cached data in r so subsequent reads observe
	// what the DMA engine wrote.
	Invalidate(r Region)
}

// Coherent is the Coherency of cache coherent platforms and of uncached
// mappings. Both operations are no-ops.
type Coherent struct{}

func (Coherent) Flush(Region)      {}
func (Coherent) Invalidate(Region) {}

// LineRange rounds r outwards to whole lines of the given size, which must be a
// power of two. Coherency implementations operate on the returned range since
// cache maintenance works on full lines.
func LineRange(r Region, line int) (start DeviceAddr, n int) {
	mask := DeviceAddr(line - 1)
	start = r.addr &^ mask
	end := (r.addr + DeviceAddr(r.Len()) + mask) &^ mask
	return start, int(end - start)
}
