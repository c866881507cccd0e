package emu

import (
	"io"
	"os"
	"sync"
	"time"
)

// FileDescriptor is one entry in the guest's open-file table.
type FileDescriptor struct {
	HostFile *os.File // nil for the guest's inherited stdin/stdout/stderr
	Path     string
	Flags    int
	IsOpen   bool
}

// FDTable backs the guest's openat/close/lseek/fstat syscalls (and reads
// or writes to any fd beyond the inherited streams) with real host file
// descriptors. fds 0-2 are reserved for stdin/stdout/stderr.
type FDTable struct {
	fds    map[uint64]*FileDescriptor
	nextFD uint64
	mu     sync.Mutex
}

// NewFDTable creates a table with the guest's standard streams pre-opened.
func NewFDTable() *FDTable {
	t := &FDTable{
		fds:    make(map[uint64]*FileDescriptor),
		nextFD: 3,
	}
	t.fds[0] = &FileDescriptor{Path: "stdin", IsOpen: true}
	t.fds[1] = &FileDescriptor{Path: "stdout", IsOpen: true}
	t.fds[2] = &FileDescriptor{Path: "stderr", IsOpen: true}
	return t
}

// Open services openat, returning the guest fd bound to the new host file.
func (t *FDTable) Open(path string, flags int, mode os.FileMode) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	hostFile, err := os.OpenFile(path, flags, mode)
	if err != nil {
		return 0, wrapErrno(EIO, err)
	}

	fd := t.nextFD
	t.nextFD++
	t.fds[fd] = &FileDescriptor{HostFile: hostFile, Path: path, Flags: flags, IsOpen: true}
	return fd, nil
}

// Close services close. Closing fd 0-2 only marks the guest's view of the
// stream closed; the host stream itself outlives it.
func (t *FDTable) Close(fd uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, exists := t.fds[fd]
	if !exists || !entry.IsOpen {
		return EBADF
	}
	if fd <= 2 {
		entry.IsOpen = false
		return nil
	}
	if entry.HostFile != nil {
		if err := entry.HostFile.Close(); err != nil {
			return wrapErrno(EIO, err)
		}
	}
	entry.HostFile = nil
	entry.IsOpen = false
	return nil
}

// open resolves fd to an open entry with a host file behind it -- the
// precondition Read/Write/Seek all share, since none of them service the
// guest's stdio fds directly (DefaultSyscallHandler does that itself).
// Stat does its own lookup so it can answer for fds 0-2.
func (t *FDTable) open(fd uint64) (*FileDescriptor, error) {
	t.mu.Lock()
	entry, exists := t.fds[fd]
	t.mu.Unlock()

	if !exists || !entry.IsOpen {
		return nil, EBADF
	}
	if entry.HostFile == nil {
		return nil, EBADF
	}
	return entry, nil
}

// Read reads from an open file descriptor. fd 0 is not serviced here --
// DefaultSyscallHandler reads stdin from its own io.Reader instead.
func (t *FDTable) Read(fd uint64, buf []byte) (int, error) {
	entry, err := t.open(fd)
	if err != nil {
		return 0, err
	}
	n, err := entry.HostFile.Read(buf)
	if err != nil && err != io.EOF {
		return n, wrapErrno(EIO, err)
	}
	return n, nil
}

// Write writes to an open file descriptor. fds 1/2 are not serviced here
// -- DefaultSyscallHandler writes stdout/stderr to its own io.Writer so
// guest output interleaves correctly with host-side logging.
func (t *FDTable) Write(fd uint64, buf []byte) (int, error) {
	entry, err := t.open(fd)
	if err != nil {
		return 0, err
	}
	n, err := entry.HostFile.Write(buf)
	if err != nil {
		return n, wrapErrno(EIO, err)
	}
	return n, nil
}

// Stat services fstat.
func (t *FDTable) Stat(fd uint64) (os.FileInfo, error) {
	t.mu.Lock()
	entry, exists := t.fds[fd]
	t.mu.Unlock()

	if !exists || !entry.IsOpen {
		return nil, EBADF
	}
	if fd <= 2 {
		return &guestStreamInfo{name: entry.Path}, nil
	}
	if entry.HostFile == nil {
		return nil, EBADF
	}
	info, err := entry.HostFile.Stat()
	if err != nil {
		return nil, wrapErrno(EIO, err)
	}
	return info, nil
}

// Seek services lseek. The guest's stdio streams are not seekable.
func (t *FDTable) Seek(fd uint64, offset int64, whence int) (int64, error) {
	entry, err := t.open(fd)
	if err != nil {
		return 0, err
	}
	if fd <= 2 {
		return 0, EBADF
	}
	pos, err := entry.HostFile.Seek(offset, whence)
	if err != nil {
		return 0, wrapErrno(EIO, err)
	}
	return pos, nil
}

// wrapErrno pairs a host os error with the Linux errno DefaultSyscallHandler
// should report for it, so errnoOf recovers the right number instead of the
// caller guessing one at the syscall-handler layer.
type wrappedErrno struct {
	errno Errno
	cause error
}

func wrapErrno(errno Errno, cause error) error { return &wrappedErrno{errno, cause} }

func (e *wrappedErrno) Error() string { return e.cause.Error() }
func (e *wrappedErrno) Unwrap() error { return e.cause }
func (e *wrappedErrno) Is(target error) bool {
	t, ok := target.(Errno)
	return ok && t == e.errno
}
func (e *wrappedErrno) As(target any) bool {
	if p, ok := target.(*Errno); ok {
		*p = e.errno
		return true
	}
	return false
}

// guestStreamInfo is the stub os.FileInfo fstat reports for the guest's
// inherited stdin/stdout/stderr, which have no backing host file to stat.
type guestStreamInfo struct{ name string }

func (f *guestStreamInfo) Name() string       { return f.name }
func (f *guestStreamInfo) Size() int64        { return 0 }
func (f *guestStreamInfo) Mode() os.FileMode  { return os.ModeCharDevice | 0666 }
func (f *guestStreamInfo) ModTime() time.Time { return time.Time{} }
func (f *guestStreamInfo) IsDir() bool        { return false }
func (f *guestStreamInfo) Sys() interface{}   { return nil }
