package emu

import "encoding/binary"

// DefaultGuestOffset is the additive offset between a guest virtual address
// and the host address it is backed by: host = guest + DefaultGuestOffset.
// Kept as a named constant rather than folded into arithmetic so tests can
// construct an AddressSpace with a small offset instead of the full
// production value.
const DefaultGuestOffset = 0x0000_8880_0000_0000

const pageSize = 4096
const pageMask = pageSize - 1

// AddressSpace is the guest's flat byte-addressable memory. Storage is a
// sparse map of lazily-allocated, zero-initialized pages keyed by
// page-aligned guest address rather than a single contiguous host
// allocation: Go gives no portable way to place a buffer at a fixed host
// virtual address the way the reference emulator's mmap(MAP_FIXED, ...)
// does, so pages stand in for that without losing the guest/host address
// arithmetic the rest of the system depends on.
type AddressSpace struct {
	offset    uint64
	pages     map[uint64][]byte
	arenaBase uint64
}

// NewAddressSpace creates an AddressSpace using DefaultGuestOffset.
func NewAddressSpace() *AddressSpace {
	return NewAddressSpaceWithOffset(DefaultGuestOffset)
}

// NewAddressSpaceWithOffset creates an AddressSpace using a caller-supplied
// guest-to-host offset, primarily so tests can use small, easy-to-read
// addresses instead of the full production offset.
func NewAddressSpaceWithOffset(offset uint64) *AddressSpace {
	return &AddressSpace{offset: offset, pages: make(map[uint64][]byte)}
}

// ToHost converts a guest address to the host address it is backed by.
func (a *AddressSpace) ToHost(guest uint64) uint64 { return guest + a.offset }

// ToGuest converts a host address back to its guest address.
func (a *AddressSpace) ToGuest(host uint64) uint64 { return host - a.offset }

func (a *AddressSpace) page(guestAddr uint64, alloc bool) []byte {
	base := guestAddr &^ pageMask
	p, ok := a.pages[base]
	if !ok {
		if !alloc {
			return nil
		}
		p = make([]byte, pageSize)
		a.pages[base] = p
	}
	return p
}

// ReadBytes reads n bytes starting at guest address addr. Unmapped pages
// read as zero, matching a freshly-mapped anonymous BSS page.
func (a *AddressSpace) ReadBytes(addr uint64, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; {
		cur := addr + uint64(i)
		p := a.page(cur, false)
		off := int(cur & pageMask)
		chunk := pageSize - off
		if chunk > n-i {
			chunk = n - i
		}
		if p != nil {
			copy(out[i:i+chunk], p[off:off+chunk])
		}
		i += chunk
	}
	return out
}

// WriteBytes writes data starting at guest address addr, allocating pages
// as needed.
func (a *AddressSpace) WriteBytes(addr uint64, data []byte) {
	n := len(data)
	for i := 0; i < n; {
		cur := addr + uint64(i)
		p := a.page(cur, true)
		off := int(cur & pageMask)
		chunk := pageSize - off
		if chunk > n-i {
			chunk = n - i
		}
		copy(p[off:off+chunk], data[i:i+chunk])
		i += chunk
	}
}

// ZeroFill maps n bytes of zeroed memory starting at addr, used for a
// segment's BSS tail (the portion of p_memsz beyond p_filesz).
func (a *AddressSpace) ZeroFill(addr, n uint64) {
	for i := uint64(0); i < n; {
		p := a.page(addr+i, true)
		off := (addr + i) & pageMask
		chunk := pageSize - off
		if chunk > n-i {
			chunk = n - i
		}
		for b := uint64(0); b < chunk; b++ {
			p[off+b] = 0
		}
		i += chunk
	}
}

func (a *AddressSpace) Read8(addr uint64) uint8 { return a.ReadBytes(addr, 1)[0] }

func (a *AddressSpace) Read16(addr uint64) uint16 {
	return binary.LittleEndian.Uint16(a.ReadBytes(addr, 2))
}

func (a *AddressSpace) Read32(addr uint64) uint32 {
	return binary.LittleEndian.Uint32(a.ReadBytes(addr, 4))
}

func (a *AddressSpace) Read64(addr uint64) uint64 {
	return binary.LittleEndian.Uint64(a.ReadBytes(addr, 8))
}

func (a *AddressSpace) Write8(addr uint64, v uint8) { a.WriteBytes(addr, []byte{v}) }

func (a *AddressSpace) Write16(addr uint64, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	a.WriteBytes(addr, buf[:])
}

func (a *AddressSpace) Write32(addr uint64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	a.WriteBytes(addr, buf[:])
}

func (a *AddressSpace) Write64(addr uint64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	a.WriteBytes(addr, buf[:])
}

// SetArenaBase records the address brk(2) should start growing from: the
// guest address immediately past the highest PT_LOAD segment (including its
// BSS tail).
func (a *AddressSpace) SetArenaBase(addr uint64) { a.arenaBase = addr }

// Arena returns the current program break.
func (a *AddressSpace) Arena() uint64 { return a.arenaBase }

// Brk implements the brk(2) convention: addr == 0 queries the current
// break, any other value requests a new one. The break is always granted
// (pages are allocated lazily on first touch) and the resulting break is
// returned, matching what the guest's libc expects back in a0.
func (a *AddressSpace) Brk(addr uint64) uint64 {
	if addr != 0 {
		a.arenaBase = addr
	}
	return a.arenaBase
}
