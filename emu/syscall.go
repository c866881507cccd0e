package emu

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// RISC-V Linux syscall numbers (a7). Numbers match the generic Linux
// syscall ABI riscv64 shares with most other 64-bit architectures.
const (
	SyscallOpenat    uint64 = 56
	SyscallClose     uint64 = 57
	SyscallLseek     uint64 = 62
	SyscallRead      uint64 = 63
	SyscallWrite     uint64 = 64
	SyscallWritev    uint64 = 66
	SyscallFstat     uint64 = 80
	SyscallExit      uint64 = 93
	SyscallExitGroup uint64 = 94
	SyscallBrk       uint64 = 214
)

// Errno is a Linux errno value. FDTable and the syscall handlers share
// this type so a host-side failure can be returned as a plain Go error
// and still carry the exact number that belongs in -a0.
type Errno int

func (e Errno) Error() string { return fmt.Sprintf("errno %d", int(e)) }

// Linux error codes, negated into a0 on failure.
const (
	EBADF  Errno = 9
	EIO    Errno = 5
	ENOSYS Errno = 38
)

// errnoOf unwraps err to the Errno it carries, falling back to def when
// err is some other error (e.g. a raw os error a caller hasn't classified).
func errnoOf(err error, def Errno) Errno {
	var e Errno
	if errors.As(err, &e) {
		return e
	}
	return def
}

// AtFDCWD is the dirfd value meaning "relative to the current working
// directory", the only dirfd this handler accepts for openat.
const AtFDCWD = ^uint64(100) + 1 // -100 as uint64

// SyscallResult reports whether a syscall ended the program.
type SyscallResult struct {
	Exited   bool
	ExitCode int64
}

// SyscallHandler services the guest's ECALL requests.
type SyscallHandler interface {
	Handle() SyscallResult
}

// DefaultSyscallHandler implements the RISC-V Linux syscall ABI: the
// syscall number is in a7 (x17), arguments in a0-a5 (x10-x15), and the
// return value (or -errno) goes back into a0.
type DefaultSyscallHandler struct {
	regFile *RegFile
	mem     *AddressSpace
	fds     *FDTable
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewDefaultSyscallHandler creates a syscall handler wired to a register
// file, address space, file descriptor table, and the guest's standard
// streams.
func NewDefaultSyscallHandler(regFile *RegFile, mem *AddressSpace, fds *FDTable, stdout, stderr io.Writer) *DefaultSyscallHandler {
	return &DefaultSyscallHandler{
		regFile: regFile,
		mem:     mem,
		fds:     fds,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// SetStdin sets the stdin reader serviced by the read syscall.
func (h *DefaultSyscallHandler) SetStdin(stdin io.Reader) { h.stdin = stdin }

const (
	regA0 uint8 = 10
	regA1 uint8 = 11
	regA2 uint8 = 12
	regA3 uint8 = 13
	regA7 uint8 = 17
)

// Handle executes the syscall indicated by a7 and the guest's a0-a5.
func (h *DefaultSyscallHandler) Handle() SyscallResult {
	switch h.regFile.ReadGP(regA7) {
	case SyscallRead:
		return h.handleRead()
	case SyscallWrite:
		return h.handleWrite()
	case SyscallWritev:
		return h.handleWritev()
	case SyscallOpenat:
		return h.handleOpenat()
	case SyscallClose:
		return h.handleClose()
	case SyscallLseek:
		return h.handleLseek()
	case SyscallFstat:
		return h.handleFstat()
	case SyscallBrk:
		return h.handleBrk()
	case SyscallExit, SyscallExitGroup:
		return h.handleExit()
	default:
		return h.handleUnknown()
	}
}

func (h *DefaultSyscallHandler) handleExit() SyscallResult {
	return SyscallResult{Exited: true, ExitCode: int64(h.regFile.ReadGP(regA0))}
}

func (h *DefaultSyscallHandler) handleRead() SyscallResult {
	fd := h.regFile.ReadGP(regA0)
	bufPtr := h.regFile.ReadGP(regA1)
	count := h.regFile.ReadGP(regA2)

	if fd != 0 {
		buf := make([]byte, count)
		n, err := h.fds.Read(fd, buf)
		if err != nil && n == 0 {
			h.setError(errnoOf(err, EIO))
			return SyscallResult{}
		}
		h.mem.WriteBytes(bufPtr, buf[:n])
		h.regFile.WriteGP(regA0, uint64(n))
		return SyscallResult{}
	}
	if h.stdin == nil {
		h.regFile.WriteGP(regA0, 0)
		return SyscallResult{}
	}

	buf := make([]byte, count)
	n, err := h.stdin.Read(buf)
	if err != nil && n == 0 {
		h.regFile.WriteGP(regA0, 0)
		return SyscallResult{}
	}
	h.mem.WriteBytes(bufPtr, buf[:n])
	h.regFile.WriteGP(regA0, uint64(n))
	return SyscallResult{}
}

func (h *DefaultSyscallHandler) writerFor(fd uint64) (io.Writer, bool) {
	switch fd {
	case 1:
		return h.stdout, true
	case 2:
		return h.stderr, true
	default:
		return nil, false
	}
}

func (h *DefaultSyscallHandler) handleWrite() SyscallResult {
	fd := h.regFile.ReadGP(regA0)
	bufPtr := h.regFile.ReadGP(regA1)
	count := h.regFile.ReadGP(regA2)

	buf := h.mem.ReadBytes(bufPtr, int(count))

	w, ok := h.writerFor(fd)
	if !ok {
		n, err := h.fds.Write(fd, buf)
		if err != nil {
			h.setError(errnoOf(err, EBADF))
			return SyscallResult{}
		}
		h.regFile.WriteGP(regA0, uint64(n))
		return SyscallResult{}
	}

	n, err := w.Write(buf)
	if err != nil {
		h.setError(EIO)
		return SyscallResult{}
	}
	h.regFile.WriteGP(regA0, uint64(n))
	return SyscallResult{}
}

// handleWritev scatters iovec{iov_base uint64, iov_len uint64} entries from
// guest memory to a single write per entry, the minimal semantics a static
// libc startup path (e.g. buffered stdio flushing argv/environ) needs.
func (h *DefaultSyscallHandler) handleWritev() SyscallResult {
	fd := h.regFile.ReadGP(regA0)
	iov := h.regFile.ReadGP(regA1)
	cnt := h.regFile.ReadGP(regA2)

	w, ok := h.writerFor(fd)
	if !ok {
		h.setError(EBADF)
		return SyscallResult{}
	}

	var total uint64
	for i := uint64(0); i < cnt; i++ {
		entry := iov + i*16
		base := h.mem.Read64(entry)
		length := h.mem.Read64(entry + 8)
		buf := h.mem.ReadBytes(base, int(length))
		n, err := w.Write(buf)
		if err != nil {
			h.setError(EIO)
			return SyscallResult{}
		}
		total += uint64(n)
	}
	h.regFile.WriteGP(regA0, total)
	return SyscallResult{}
}

func (h *DefaultSyscallHandler) handleOpenat() SyscallResult {
	dirfd := h.regFile.ReadGP(regA0)
	pathPtr := h.regFile.ReadGP(regA1)
	flags := int(int32(h.regFile.ReadGP(regA2)))
	mode := os.FileMode(h.regFile.ReadGP(regA3) & 0777)

	if dirfd != AtFDCWD {
		h.setError(EBADF)
		return SyscallResult{}
	}

	path := h.readCString(pathPtr)
	fd, err := h.fds.Open(path, flags, mode)
	if err != nil {
		h.setError(errnoOf(err, EIO))
		return SyscallResult{}
	}
	h.regFile.WriteGP(regA0, fd)
	return SyscallResult{}
}

func (h *DefaultSyscallHandler) handleClose() SyscallResult {
	fd := h.regFile.ReadGP(regA0)
	if fd <= 2 {
		h.regFile.WriteGP(regA0, 0)
		return SyscallResult{}
	}
	if err := h.fds.Close(fd); err != nil {
		h.setError(errnoOf(err, EBADF))
		return SyscallResult{}
	}
	h.regFile.WriteGP(regA0, 0)
	return SyscallResult{}
}

func (h *DefaultSyscallHandler) handleLseek() SyscallResult {
	fd := h.regFile.ReadGP(regA0)
	offset := int64(h.regFile.ReadGP(regA1))
	whence := int(int32(h.regFile.ReadGP(regA2)))

	pos, err := h.fds.Seek(fd, offset, whence)
	if err != nil {
		h.setError(errnoOf(err, EBADF))
		return SyscallResult{}
	}
	h.regFile.WriteGP(regA0, uint64(pos))
	return SyscallResult{}
}

// handleFstat fills the riscv64 struct stat layout, leaving fields this
// emulator has no meaningful value for (device, inode, timestamps) zeroed.
func (h *DefaultSyscallHandler) handleFstat() SyscallResult {
	fd := h.regFile.ReadGP(regA0)
	statBuf := h.regFile.ReadGP(regA1)

	info, err := h.fds.Stat(fd)
	if err != nil {
		h.setError(errnoOf(err, EBADF))
		return SyscallResult{}
	}

	buf := make([]byte, 128)
	mode := uint32(info.Mode().Perm())
	if info.IsDir() {
		mode |= 0040000
	} else {
		mode |= 0100000
	}
	putLE32(buf[16:], mode)
	putLE64(buf[48:], uint64(info.Size()))
	h.mem.WriteBytes(statBuf, buf)
	h.regFile.WriteGP(regA0, 0)
	return SyscallResult{}
}

func (h *DefaultSyscallHandler) handleBrk() SyscallResult {
	h.regFile.WriteGP(regA0, h.mem.Brk(h.regFile.ReadGP(regA0)))
	return SyscallResult{}
}

func (h *DefaultSyscallHandler) handleUnknown() SyscallResult {
	h.setError(ENOSYS)
	return SyscallResult{}
}

func (h *DefaultSyscallHandler) setError(errno Errno) {
	h.regFile.WriteGP(regA0, uint64(-int64(errno)))
}

func (h *DefaultSyscallHandler) readCString(addr uint64) string {
	var buf []byte
	for {
		b := h.mem.Read8(addr)
		if b == 0 {
			break
		}
		buf = append(buf, b)
		addr++
	}
	return string(buf)
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putLE64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
