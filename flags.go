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

// OpenFlags builds the flag mask handed to Open from a closed set of base
// access modes plus independent modifiers. O_CLOEXEC is always set.
type OpenFlags struct {
	flags int
}

const defaultFlags = unix.O_CLOEXEC

func newOpenFlags(mode int) OpenFlags {
	return OpenFlags{flags: mode | defaultFlags}
}

// Base modes, mirroring the Python-style open modes r/r+/w/w+/x/x+/a/a+.

func ReadOnly() OpenFlags  { return newOpenFlags(unix.O_RDONLY) }
func ReadWrite() OpenFlags { return newOpenFlags(unix.O_RDWR) }

func WriteTruncate() OpenFlags {
	return newOpenFlags(unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC)
}

func ReadWriteTruncate() OpenFlags {
	return newOpenFlags(unix.O_RDWR | unix.O_CREAT | unix.O_TRUNC)
}

func WriteExclusive() OpenFlags {
	return newOpenFlags(unix.O_WRONLY | unix.O_CREAT | unix.O_EXCL)
}

func ReadWriteExclusive() OpenFlags {
	return newOpenFlags(unix.O_RDWR | unix.O_CREAT | unix.O_EXCL)
}

func Append() OpenFlags {
	return newOpenFlags(unix.O_WRONLY | unix.O_CREAT | unix.O_APPEND)
}

func ReadAppend() OpenFlags {
	return newOpenFlags(unix.O_RDWR | unix.O_CREAT | unix.O_APPEND)
}

func (of OpenFlags) Direct() OpenFlags  { return of.Set(unix.O_DIRECT) }
func (of OpenFlags) Sync() OpenFlags    { return of.Set(unix.O_SYNC) }
func (of OpenFlags) NoAtime() OpenFlags { return of.Set(unix.O_NOATIME) }
func (of OpenFlags) Tmpfile() OpenFlags { return of.Set(unix.O_TMPFILE) }

func (of OpenFlags) Set(flag int) OpenFlags {
	of.flags |= flag
	return of
}

func (of OpenFlags) Unset(flag int) OpenFlags {
	of.flags &^= flag
	return of
}

func (of OpenFlags) Has(flag int) bool {
	return of.flags&flag == flag
}

func (of OpenFlags) Flags() int { return of.flags }
