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

// Package record is a minimal length-prefixed record codec used to carry
// structured data through mfile's byte-level operations.
package record

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

const HeaderSize = 4 + 8 + 4

var (
	ErrCorruptRecord = errors.New("the data of record is wrong")
)

type Header struct {
	Crc  uint32
	Id   uint64
	Size uint32
}

type Record struct {
	Id      uint64
	Payload []byte
}

func New(id uint64, payload []byte) *Record {
	return &Record{
		Id:      id,
		Payload: payload,
	}
}

// Encode lays out crc | id | size | payload, big-endian. The crc covers
// everything after it.
func (r *Record) Encode() []byte {
	buf := make([]byte, HeaderSize+len(r.Payload))
	binary.BigEndian.PutUint64(buf[4:12], r.Id)
	binary.BigEndian.PutUint32(buf[12:16], uint32(len(r.Payload)))
	copy(buf[HeaderSize:], r.Payload)
	binary.BigEndian.PutUint32(buf[:4], crc32.ChecksumIEEE(buf[4:]))
	return buf
}

func DecodeHeader(data []byte) *Header {
	return &Header{
		Crc:  binary.BigEndian.Uint32(data[:4]),
		Id:   binary.BigEndian.Uint64(data[4:12]),
		Size: binary.BigEndian.Uint32(data[12:16]),
	}
}

// Decode rebuilds a record from its header and payload bytes, verifying the
// checksum.
func Decode(h *Header, payload []byte) (*Record, error) {
	buf := make([]byte, 8+4+len(payload))
	binary.BigEndian.PutUint64(buf[:8], h.Id)
	binary.BigEndian.PutUint32(buf[8:12], h.Size)
	copy(buf[12:], payload)

	if crc32.ChecksumIEEE(buf) != h.Crc {
		return nil, ErrCorruptRecord
	}

	return &Record{
		Id:      h.Id,
		Payload: payload,
	}, nil
}
