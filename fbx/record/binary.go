// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// binaryHeaderSize is the magic, two reserved bytes and the version.
const binaryHeaderSize = 27

// wideVersion is the first version using 64-bit record offsets.
const wideVersion = 7500

type binaryParser struct {
	data []byte
	pos  int
	wide bool
}

func parseBinary(data []byte) (*Document, error) {
	if len(data) < binaryHeaderSize {
		return nil, fmt.Errorf("fbx: truncated binary header")
	}
	version := binary.LittleEndian.Uint32(data[23:27])
	p := &binaryParser{data: data, pos: binaryHeaderSize, wide: version >= wideVersion}
	root := &Record{}
	for p.pos < len(data) {
		rec, err := p.record()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}
		root.Children = append(root.Children, rec)
	}
	return &Document{Version: version, Binary: true, Root: root}, nil
}

func (p *binaryParser) errorf(format string, args ...any) error {
	return fmt.Errorf("fbx: offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *binaryParser) need(n int) error {
	if n < 0 || p.pos+n > len(p.data) {
		return p.errorf("unexpected end of file reading %d bytes", n)
	}
	return nil
}

func (p *binaryParser) bytes(n int) ([]byte, error) {
	if err := p.need(n); err != nil {
		return nil, err
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b, nil
}

func (p *binaryParser) u8() (byte, error) {
	b, err := p.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (p *binaryParser) u32() (uint32, error) {
	b, err := p.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (p *binaryParser) u64() (uint64, error) {
	b, err := p.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// offset reads a record header field, 32 or 64 bits wide.
func (p *binaryParser) offset() (uint64, error) {
	if p.wide {
		return p.u64()
	}
	v, err := p.u32()
	return uint64(v), err
}

// record reads one node record, returning nil at a null record.
func (p *binaryParser) record() (*Record, error) {
	end, err := p.offset()
	if err != nil {
		return nil, err
	}
	numProps, err := p.offset()
	if err != nil {
		return nil, err
	}
	if _, err := p.offset(); err != nil {
		return nil, err
	}
	nameLen, err := p.u8()
	if err != nil {
		return nil, err
	}
	if end == 0 {
		return nil, nil
	}
	if end > uint64(len(p.data)) || end < uint64(p.pos) {
		return nil, p.errorf("record end %d out of range", end)
	}
	name, err := p.bytes(int(nameLen))
	if err != nil {
		return nil, err
	}
	rec := &Record{Name: string(name)}
	for range numProps {
		v, err := p.property()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rec.Name, err)
		}
		rec.Props = append(rec.Props, v)
	}
	for uint64(p.pos) < end {
		child, err := p.record()
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}
		rec.Children = append(rec.Children, child)
	}
	p.pos = int(end)
	return rec, nil
}

func (p *binaryParser) property() (any, error) {
	code, err := p.u8()
	if err != nil {
		return nil, err
	}
	switch code {
	case 'Y':
		b, err := p.bytes(2)
		if err != nil {
			return nil, err
		}
		return int16(binary.LittleEndian.Uint16(b)), nil
	case 'C':
		b, err := p.u8()
		return b != 0, err
	case 'I':
		v, err := p.u32()
		return int32(v), err
	case 'F':
		v, err := p.u32()
		return math.Float32frombits(v), err
	case 'D':
		v, err := p.u64()
		return math.Float64frombits(v), err
	case 'L':
		v, err := p.u64()
		return int64(v), err
	case 'S', 'R':
		n, err := p.u32()
		if err != nil {
			return nil, err
		}
		b, err := p.bytes(int(n))
		if err != nil {
			return nil, err
		}
		if code == 'S' {
			return binaryName(b), nil
		}
		return bytes.Clone(b), nil
	case 'f', 'd', 'l', 'i', 'b':
		return p.array(code)
	}
	return nil, p.errorf("unknown property type %q", code)
}

func (p *binaryParser) array(code byte) (any, error) {
	count, err := p.u32()
	if err != nil {
		return nil, err
	}
	encoding, err := p.u32()
	if err != nil {
		return nil, err
	}
	size, err := p.u32()
	if err != nil {
		return nil, err
	}
	raw, err := p.bytes(int(size))
	if err != nil {
		return nil, err
	}
	if encoding == 1 {
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, p.errorf("array: %v", err)
		}
		raw, err = io.ReadAll(zr)
		if err != nil {
			return nil, p.errorf("array: %v", err)
		}
	}
	elem := map[byte]int{'f': 4, 'd': 8, 'l': 8, 'i': 4, 'b': 1}[code]
	if uint64(len(raw)) < uint64(count)*uint64(elem) {
		return nil, p.errorf("array of %d elements has only %d bytes", count, len(raw))
	}
	le := binary.LittleEndian
	switch code {
	case 'f':
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(le.Uint32(raw[i*4:]))
		}
		return out, nil
	case 'd':
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(le.Uint64(raw[i*8:]))
		}
		return out, nil
	case 'l':
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(le.Uint64(raw[i*8:]))
		}
		return out, nil
	case 'i':
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(le.Uint32(raw[i*4:]))
		}
		return out, nil
	}
	out := make([]bool, count)
	for i := range out {
		out[i] = raw[i] != 0
	}
	return out, nil
}
