//go:build linux

package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

var _ Bus = (*Mapping)(nil) // compile time guarantee of interface implementation.

// Mapping is a window of physical memory mapped through /dev/mem.
// Register accesses are performed with atomic 32-bit loads and stores so the
// compiler neither splits nor elides them.
type Mapping struct {
	phys uintptr
	mem  []byte
}

// MapDevMem maps size bytes of physical memory starting at phys. phys must be
// page aligned. The mapping is uncached (O_SYNC) which makes it suitable both
// for register windows and for DMA memory on non-coherent platforms.
func MapDevMem(phys uintptr, size int) (*Mapping, error) {
	if phys%uintptr(os.Getpagesize()) != 0 {
		return nil, fmt.Errorf("mmio: physical address %#x not page aligned", phys)
	}
	fd, err := unix.Open("/dev/mem", unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open /dev/mem: %w", err)
	}
	defer unix.Close(fd)
	mem, err := unix.Mmap(fd, int64(phys), size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmio: mmap %#x+%#x: %w", phys, size, err)
	}
	return &Mapping{phys: phys, mem: mem}, nil
}

// Phys returns the physical address the mapping starts at.
func (m *Mapping) Phys() uintptr { return m.phys }

// Bytes returns the CPU view of the mapping. Intended for DMA windows.
func (m *Mapping) Bytes() []byte { return m.mem }

func (m *Mapping) Read32(off uintptr) uint32 {
	return atomic.LoadUint32(m.ptr(off))
}

func (m *Mapping) Write32(off uintptr, v uint32) {
	atomic.StoreUint32(m.ptr(off), v)
}

func (m *Mapping) ptr(off uintptr) *uint32 {
	if off%4 != 0 || int(off)+4 > len(m.mem) {
		panic("mmio: bad register offset")
	}
	return (*uint32)(unsafe.Pointer(&m.mem[off]))
}

// Close unmaps the memory. The Mapping must not be used afterwards.
func (m *Mapping) Close() error {
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem = nil
	return err
}
