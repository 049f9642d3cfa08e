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
	"math/rand"

	"golang.org/x/sys/unix"
)

const DefaultPerm uint32 = 0o666

// Open opens path with the given flags and returns a File owning the
// descriptor.
func Open(path string, flags OpenFlags, perm uint32) (*File, error) {
	fd, err := unix.Open(path, flags.Flags(), perm)
	if err != nil {
		return nil, sysError("open", path, err)
	}
	return NewFile(NewFd(fd)), nil
}

const tmpNameAttempts = 10000

var tmpNameLetters = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func tmpName(prefix string) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = tmpNameLetters[rand.Intn(len(tmpNameLetters))]
	}
	return prefix + string(suffix)
}

// MakeTmpfile creates and opens a uniquely named file, prefix plus six
// placeholder characters, with mkstemp semantics (exclusive create, retried
// on collision). Closing the returned File removes the generated name before
// closing the descriptor.
func MakeTmpfile(prefix string) (*File, error) {
	for i := 0; i < tmpNameAttempts; i++ {
		name := tmpName(prefix)
		fd, err := unix.Open(name, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, 0o600)
		if err == unix.EEXIST {
			continue
		}
		if err != nil {
			return nil, sysError("open", name, err)
		}
		return NewFile(NewTmpFd(fd, name)), nil
	}
	return nil, sysError("open", prefix+"XXXXXX", unix.EEXIST)
}
