package main

import (
	"bytes"
	"fmt"

	"github.com/bwmarrin/snowflake"
	mfile "github.com/range3/mfile-go"
	"github.com/range3/mfile-go/pkg/record"
)

func main() {
	file, err := mfile.MakeTmpfile("/tmp/mfile_example_")
	if err != nil {
		panic(err.Error())
	}
	defer file.Close()

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err.Error())
	}

	payloads := [][]byte{
		[]byte("hello"),
		[]byte("world"),
		[]byte("descriptor level I/O"),
	}

	ids := make([]uint64, 0, len(payloads))
	for _, payload := range payloads {
		id := uint64(node.Generate().Int64())
		err = file.WriteExact(record.New(id, payload).Encode())
		if err != nil {
			panic(err.Error())
		}
		ids = append(ids, id)
	}

	err = file.Sync()
	if err != nil {
		panic(err.Error())
	}

	data, err := file.PreadAll(0)
	if err != nil {
		panic(err.Error())
	}

	off := 0
	for i, payload := range payloads {
		h := record.DecodeHeader(data[off : off+record.HeaderSize])
		body := data[off+record.HeaderSize : off+record.HeaderSize+int(h.Size)]

		rec, err := record.Decode(h, body)
		if err != nil {
			panic(err.Error())
		}

		if rec.Id != ids[i] || !bytes.Equal(rec.Payload, payload) {
			panic("record mismatch")
		}

		fmt.Printf("record id=%d payload=%q\n", rec.Id, rec.Payload)
		off += record.HeaderSize + int(h.Size)
	}
}
