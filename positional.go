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

package mfile

import (
	"math"

	"golang.org/x/sys/unix"
)

// checkOffset rejects offsets the kernel interface cannot represent before
// any syscall is attempted.
func checkOffset(op string, off uint64) error {
	if off > math.MaxInt64 {
		return &SystemError{Op: op, Errno: unix.EINVAL}
	}
	return nil
}

// PreadOnce issues a single pread syscall at off, retrying transparently on
// EINTR. The sequential cursor is untouched.
func (f *File) PreadOnce(p []byte, off uint64) (int, error) {
	if err := checkOffset("pread", off); err != nil {
		return 0, err
	}
	for {
		n, err := unix.Pread(f.native(), p, int64(off))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, sysError("pread", "", err)
		}
		return n, nil
	}
}

// PwriteOnce issues a single pwrite syscall at off, retrying transparently
// on EINTR. The sequential cursor is untouched.
func (f *File) PwriteOnce(p []byte, off uint64) (int, error) {
	if err := checkOffset("pwrite", off); err != nil {
		return 0, err
	}
	for {
		n, err := unix.Pwrite(f.native(), p, int64(off))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, sysError("pwrite", "", err)
		}
		return n, nil
	}
}

// Pread fills p starting at off, advancing the offset itself across passes.
// A count less than len(p) means EOF was reached; it is not an error.
func (f *File) Pread(p []byte, off uint64) (int, error) {
	var total int
	for total < len(p) {
		n, err := f.PreadOnce(p[total:], off+uint64(total))
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

// Pwrite drains p starting at off, advancing the offset itself across
// passes. A count less than len(p) means the device is full; it is not an
// error.
func (f *File) Pwrite(p []byte, off uint64) (int, error) {
	var total int
	for total < len(p) {
		n, err := f.PwriteOnce(p[total:], off+uint64(total))
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

// PreadExact fills p completely from off or fails with an EndOfFileError
// carrying the partial count.
func (f *File) PreadExact(p []byte, off uint64) error {
	n, err := f.Pread(p, off)
	if err != nil {
		return err
	}
	if n < len(p) {
		return &EndOfFileError{BytesRead: n}
	}
	return nil
}

// PwriteExact writes p completely at off or fails with an
// InsufficientSpaceError carrying the partial count.
func (f *File) PwriteExact(p []byte, off uint64) error {
	n, err := f.Pwrite(p, off)
	if err != nil {
		return err
	}
	if n < len(p) {
		return &InsufficientSpaceError{BytesWritten: n}
	}
	return nil
}

// PreadN reads up to size bytes at off and returns exactly what was
// obtained. A short result means EOF, not failure.
func (f *File) PreadN(size int, off uint64) ([]byte, error) {
	buf := make([]byte, size)
	n, err := f.Pread(buf, off)
	if err != nil {
		return nil, err
	}
	return buf[:n:n], nil
}

// PreadAll reads everything from off to the logical end of file, using the
// same stat-estimate-then-verify strategy as ReadAll. When the stat size
// says off is already at or past the end, no syscall is attempted.
func (f *File) PreadAll(off uint64) ([]byte, error) {
	size, err := f.Size()
	if err != nil {
		return nil, err
	}

	var buf []byte
	switch {
	case size == 0:
		buf = make([]byte, initBufferSize)
	case off >= size:
		return []byte{}, nil
	default:
		remaining := size - off
		if remaining > math.MaxInt {
			return nil, ErrFileTooLarge
		}
		buf = make([]byte, remaining)
	}

	return readToEnd(buf, func(p []byte, done int) (int, error) {
		return f.Pread(p, off+uint64(done))
	})
}
