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
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	ErrEndOfFile         = errors.New("end of file reached")
	ErrInsufficientSpace = errors.New("insufficient space")
	ErrFileTooLarge      = errors.New("file size too large")
)

// SystemError reports a failed system call together with the raw OS error
// code. It unwraps to the unix.Errno, so errors.Is(err, unix.ENOENT) and
// friends work.
type SystemError struct {
	Op    string
	Path  string
	Errno unix.Errno
}

func (e *SystemError) Error() string {
	if e.Path != "" {
		return e.Op + " " + e.Path + ": " + e.Errno.Error()
	}
	return e.Op + ": " + e.Errno.Error()
}

func (e *SystemError) Unwrap() error { return e.Errno }

// EndOfFileError is returned by the exact-read operations when the file ran
// out before the request was satisfied. BytesRead is always strictly less
// than the requested size.
type EndOfFileError struct {
	BytesRead int
}

func (e *EndOfFileError) Error() string {
	return fmt.Sprintf("failed to read exact amount of bytes: got %d before EOF", e.BytesRead)
}

func (e *EndOfFileError) Unwrap() error { return ErrEndOfFile }

// InsufficientSpaceError is returned by the exact-write operations when the
// medium stopped accepting data before the request was satisfied.
// BytesWritten is always strictly less than the requested size.
type InsufficientSpaceError struct {
	BytesWritten int
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("failed to write exact amount of bytes: wrote %d before running out of space", e.BytesWritten)
}

func (e *InsufficientSpaceError) Unwrap() error { return ErrInsufficientSpace }

// Is additionally matches unix.ENOSPC, since a short write stands in for the
// device-full condition the kernel never got to report.
func (e *InsufficientSpaceError) Is(target error) bool {
	return target == ErrInsufficientSpace || target == unix.ENOSPC
}

func sysError(op, path string, err error) error {
	errno, ok := err.(unix.Errno)
	if !ok {
		errno = unix.EIO
	}
	return &SystemError{Op: op, Path: path, Errno: errno}
}
