// Copyright 2024 The mfile-go Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mfile is a thin Linux-only wrapper around POSIX descriptor I/O.
// It layers three tiers of read/write semantics over raw syscalls: a single
// interruption-safe syscall (ReadOnce), a saturating loop that retries until
// the request is satisfied or the file is exhausted (Read), and an
// all-or-fail variant that reports partial progress as an error (ReadExact).
// Positional counterparts (Pread etc.) take an explicit offset and leave the
// sequential cursor untouched.
package mfile

import (
	"io"
	"math"

	"golang.org/x/sys/unix"
)

const initBufferSize = 4096

// growLimit is the largest capacity that can still grow by half again
// without overflowing int.
const growLimit = math.MaxInt / 3 * 2

// File performs descriptor-level I/O through any Handle flavor.
type File struct {
	handle Handle
}

func NewFile(handle Handle) *File {
	return &File{handle: handle}
}

func (f *File) Handle() Handle { return f.handle }

func (f *File) Valid() bool { return f.handle != nil && f.handle.Valid() }

// Close releases the underlying handle if it owns its descriptor. Closing a
// File over a non-owning handle such as WeakFd is a no-op.
func (f *File) Close() error {
	if c, ok := f.handle.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (f *File) native() int { return f.handle.Native() }

// ReadOnce issues a single read syscall, retrying transparently on EINTR.
// It may return fewer bytes than len(p).
func (f *File) ReadOnce(p []byte) (int, error) {
	for {
		n, err := unix.Read(f.native(), p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, sysError("read", "", err)
		}
		return n, nil
	}
}

// WriteOnce issues a single write syscall, retrying transparently on EINTR.
// It may write fewer bytes than len(p).
func (f *File) WriteOnce(p []byte) (int, error) {
	for {
		n, err := unix.Write(f.native(), p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, sysError("write", "", err)
		}
		return n, nil
	}
}

// Read fills p by repeated reads until p is full or the file is exhausted.
// A count less than len(p) means EOF was reached; it is not an error.
func (f *File) Read(p []byte) (int, error) {
	var total int
	for total < len(p) {
		n, err := f.ReadOnce(p[total:])
		if err != nil {
			return total, err
		}
		// EOF
		if n == 0 {
			break
		}
		total += n
	}
	return total, nil
}

// Write drains p by repeated writes until everything is written or the
// medium stops accepting data. A count less than len(p) means the device is
// full; it is not an error.
func (f *File) Write(p []byte) (int, error) {
	var total int
	for total < len(p) {
		n, err := f.WriteOnce(p[total:])
		if err != nil {
			return total, err
		}
		// No space left on device
		if n == 0 {
			break
		}
		total += n
	}
	return total, nil
}

// ReadExact fills p completely or fails with an EndOfFileError carrying the
// partial count.
func (f *File) ReadExact(p []byte) error {
	n, err := f.Read(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return &EndOfFileError{BytesRead: n}
	}
	return nil
}

// WriteExact writes p completely or fails with an InsufficientSpaceError
// carrying the partial count.
func (f *File) WriteExact(p []byte) error {
	n, err := f.Write(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return &InsufficientSpaceError{BytesWritten: n}
	}
	return nil
}

// ReadN reads up to size bytes from the cursor and returns exactly what was
// obtained. A short result means EOF, not failure.
func (f *File) ReadN(size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := f.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n:n], nil
}

// ReadAll reads from the current cursor to the logical end of file. The stat
// size, when it reports one, is only a starting estimate: sparse and special
// files lie, and the file may grow concurrently. A pass that fills the whole
// buffer therefore grows it by 1.5x and reads again; a short pass is the
// final truth and the result is trimmed to it.
func (f *File) ReadAll() ([]byte, error) {
	size, err := f.Size()
	if err != nil {
		return nil, err
	}

	var buf []byte
	if size == 0 {
		buf = make([]byte, initBufferSize)
	} else {
		pos, err := f.Tell()
		if err != nil {
			return nil, err
		}
		if pos >= size {
			return []byte{}, nil
		}
		remaining := size - pos
		if remaining > math.MaxInt {
			return nil, ErrFileTooLarge
		}
		buf = make([]byte, remaining)
	}

	return readToEnd(buf, func(p []byte, _ int) (int, error) {
		return f.Read(p)
	})
}

// readToEnd runs the adaptive growth loop over buf. Each pass tries to fill
// the unread suffix; filling it completely means more data may follow, a
// short pass means EOF.
func readToEnd(buf []byte, read func(p []byte, done int) (int, error)) ([]byte, error) {
	var total int
	for {
		span := buf[total:]
		n, err := read(span, total)
		if err != nil {
			return nil, err
		}
		total += n
		// EOF
		if n < len(span) {
			return buf[:total:total], nil
		}
		if len(buf) >= growLimit {
			return nil, ErrFileTooLarge
		}
		next := len(buf) / 2 * 3
		if next < initBufferSize {
			next = initBufferSize
		}
		grown := make([]byte, next)
		copy(grown, buf)
		buf = grown
	}
}

// Seek moves the sequential cursor and returns the new position.
func (f *File) Seek(offset int64, whence int) (uint64, error) {
	pos, err := unix.Seek(f.native(), offset, whence)
	if err != nil {
		return 0, sysError("seek", "", err)
	}
	return uint64(pos), nil
}

// Tell returns the current sequential cursor position.
func (f *File) Tell() (uint64, error) {
	pos, err := unix.Seek(f.native(), 0, unix.SEEK_CUR)
	if err != nil {
		return 0, sysError("tell", "", err)
	}
	return uint64(pos), nil
}

func (f *File) Stat() (unix.Stat_t, error) {
	var st unix.Stat_t
	if err := unix.Fstat(f.native(), &st); err != nil {
		return unix.Stat_t{}, sysError("stat", "", err)
	}
	return st, nil
}

func (f *File) Size() (uint64, error) {
	st, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(st.Size), nil
}

func (f *File) Empty() (bool, error) {
	size, err := f.Size()
	return size == 0, err
}

func (f *File) Truncate(size uint64) error {
	if size > math.MaxInt64 {
		return ErrFileTooLarge
	}
	for {
		err := unix.Ftruncate(f.native(), int64(size))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return sysError("truncate", "", err)
		}
		return nil
	}
}

// Sync flushes file data and metadata to stable storage.
func (f *File) Sync() error {
	if err := unix.Fsync(f.native()); err != nil {
		return sysError("sync", "", err)
	}
	return nil
}
