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

import "golang.org/x/sys/unix"

const invalidFd = -1

// Handle is anything exposing a native descriptor and a validity check.
type Handle interface {
	Native() int
	Valid() bool
}

// Fd exclusively owns a descriptor and closes it exactly once.
type Fd struct {
	fd int
}

func NewFd(fd int) *Fd {
	return &Fd{fd: fd}
}

func (f *Fd) Native() int { return f.fd }

func (f *Fd) Valid() bool { return f.fd >= 0 }

// Release gives up ownership of the descriptor and invalidates the handle.
func (f *Fd) Release() int {
	fd := f.fd
	f.fd = invalidFd
	return fd
}

func (f *Fd) Close() error {
	if !f.Valid() {
		return nil
	}
	if err := unix.Close(f.Release()); err != nil {
		return sysError("close", "", err)
	}
	return nil
}

// TmpFd owns a temporary file's descriptor. Closing removes the file by its
// generated name and then closes the descriptor.
type TmpFd struct {
	fd   int
	name string
}

func NewTmpFd(fd int, name string) *TmpFd {
	return &TmpFd{fd: fd, name: name}
}

func (t *TmpFd) Native() int { return t.fd }

func (t *TmpFd) Valid() bool { return t.fd >= 0 }

func (t *TmpFd) Name() string { return t.name }

func (t *TmpFd) Release() int {
	fd := t.fd
	t.fd = invalidFd
	return fd
}

func (t *TmpFd) Close() error {
	if !t.Valid() {
		return nil
	}
	// Unlink first so a failed close cannot leak the path.
	unlinkErr := unix.Unlink(t.name)
	closeErr := unix.Close(t.Release())
	if unlinkErr != nil {
		return sysError("unlink", t.name, unlinkErr)
	}
	if closeErr != nil {
		return sysError("close", t.name, closeErr)
	}
	return nil
}

// WeakFd is a non-owning view of a descriptor. Copies are free and never
// affect the descriptor's lifetime.
type WeakFd int

func (w WeakFd) Native() int { return int(w) }

func (w WeakFd) Valid() bool { return w >= 0 }
