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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestPwritePreadRoundTrip(t *testing.T) {
	file := newTestFile(t)

	testData := []byte("Hello, World!")

	written, err := file.Pwrite(testData, 100)
	assert.Nil(t, err)
	assert.Equal(t, len(testData), written)

	data, err := file.PreadN(64, 100)
	assert.Nil(t, err)
	assert.Equal(t, testData, data)
}

func TestPreadEmptyFile(t *testing.T) {
	file := newTestFile(t)

	buffer := make([]byte, 64)
	read, err := file.Pread(buffer, 0)
	assert.Nil(t, err)
	assert.Equal(t, 0, read)
}

func TestPreadOnceBeyondEOF(t *testing.T) {
	file := newTestFile(t)

	err := file.PwriteExact([]byte("short"), 0)
	assert.Nil(t, err)

	buffer := make([]byte, 16)
	read, err := file.PreadOnce(buffer, 999999)
	assert.Nil(t, err)
	assert.Equal(t, 0, read)
}

func TestPreadMaxOffset(t *testing.T) {
	file := newTestFile(t)

	buffer := make([]byte, 16)
	_, err := file.PreadOnce(buffer, math.MaxUint64)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, unix.EINVAL))

	_, err = file.Pread(buffer, math.MaxUint64)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, unix.EINVAL))

	_, err = file.PwriteOnce(buffer, math.MaxUint64)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, unix.EINVAL))
}

func TestPwriteDoesNotMoveCursor(t *testing.T) {
	file := newTestFile(t)

	before, err := file.Tell()
	assert.Nil(t, err)

	err = file.PwriteExact([]byte("positional"), 50)
	assert.Nil(t, err)

	after, err := file.Tell()
	assert.Nil(t, err)
	assert.Equal(t, before, after)

	buffer := make([]byte, 10)
	_, err = file.Pread(buffer, 50)
	assert.Nil(t, err)

	after, err = file.Tell()
	assert.Nil(t, err)
	assert.Equal(t, before, after)
}

func TestPreadSparseRegionReadsZeros(t *testing.T) {
	file := newTestFile(t)

	testData := []byte("Large Sparse")
	offset := uint64(1 << 20)

	err := file.PwriteExact(testData, offset)
	assert.Nil(t, err)

	start := uint64(512 << 10)
	data, err := file.PreadAll(start)
	assert.Nil(t, err)
	assert.Len(t, data, int(offset-start)+len(testData))

	hole := data[:offset-start]
	assert.Equal(t, make([]byte, len(hole)), hole)
	assert.Equal(t, testData, data[offset-start:])
}

func TestPreadHoleBetweenWrites(t *testing.T) {
	file := newTestFile(t)

	err := file.PwriteExact([]byte("head"), 0)
	assert.Nil(t, err)
	err = file.PwriteExact([]byte("tail"), 100)
	assert.Nil(t, err)

	buffer := make([]byte, 4)
	read, err := file.Pread(buffer, 50)
	assert.Nil(t, err)
	assert.Equal(t, 4, read)
	assert.Equal(t, make([]byte, 4), buffer)
}

func TestPreadExactCarriesPartialCount(t *testing.T) {
	file := newTestFile(t)

	err := file.PwriteExact([]byte("small"), 0)
	assert.Nil(t, err)

	buffer := make([]byte, 10)
	err = file.PreadExact(buffer, 0)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrEndOfFile))

	var eofErr *EndOfFileError
	assert.True(t, errors.As(err, &eofErr))
	assert.Equal(t, 5, eofErr.BytesRead)
}

func TestPreadExactFullSuccess(t *testing.T) {
	file := newTestFile(t)

	testData := []byte("exact positional data")
	err := file.PwriteExact(testData, 1024)
	assert.Nil(t, err)

	buffer := make([]byte, len(testData))
	err = file.PreadExact(buffer, 1024)
	assert.Nil(t, err)
	assert.Equal(t, testData, buffer)
}

func TestPreadAllAtOffsetPastEOF(t *testing.T) {
	file := newTestFile(t)

	err := file.PwriteExact([]byte("content"), 0)
	assert.Nil(t, err)

	data, err := file.PreadAll(7)
	assert.Nil(t, err)
	assert.Len(t, data, 0)

	data, err = file.PreadAll(1000)
	assert.Nil(t, err)
	assert.Len(t, data, 0)
}

func TestPreadAllIdempotent(t *testing.T) {
	file := newTestFile(t)

	err := file.PwriteExact([]byte("stable content"), 256)
	assert.Nil(t, err)

	first, err := file.PreadAll(0)
	assert.Nil(t, err)
	second, err := file.PreadAll(0)
	assert.Nil(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 256+14)
}

func TestPreadSplitWritesReadBackWhole(t *testing.T) {
	file := newTestFile(t)

	data := make([]byte, 800)
	for i := range data {
		data[i] = byte('a' + i%26)
	}
	offset := uint64(2048)

	written, err := file.Pwrite(data[:400], offset)
	assert.Nil(t, err)
	assert.Equal(t, 400, written)

	written, err = file.Pwrite(data[400:], offset+400)
	assert.Nil(t, err)
	assert.Equal(t, 400, written)

	buffer := make([]byte, 800)
	read, err := file.Pread(buffer, offset)
	assert.Nil(t, err)
	assert.Equal(t, 800, read)
	assert.Equal(t, data, buffer)
}
