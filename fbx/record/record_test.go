// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiDoc = `; FBX 7.4.0 project file
; ----------------------------------------------------
FBXHeaderExtension:  {
	FBXHeaderVersion: 1003
	FBXVersion: 7400
}
Objects:  {
	Geometry: 100, "Geometry::Plane", "Mesh" {
		Vertices: *12 {
			a: -1,0,-1,1,0,-1,
			1,0,1,-1,0,1
		}
		PolygonVertexIndex: *4 {
			a: 0,1,2,-4
		}
	}
	Model: 200, "Model::Plane", "Mesh" {
		Properties70:  {
			P: "Lcl Translation", "Lcl Translation", "", "A",1.5,0,-2
			P: "currentUVSet", "KString", "", "U", "map1"
		}
		Shading: T
	}
}
Connections:  {
	;Model::Plane, Model::RootNode
	C: "OO",200,0
}
`

func TestParseASCII(t *testing.T) {
	doc, err := Parse(strings.NewReader(asciiDoc))
	require.NoError(t, err)
	assert.False(t, doc.Binary)
	assert.Equal(t, uint32(7400), doc.Version)

	objs := doc.Root.Child("Objects")
	require.NotNil(t, objs)
	geom := objs.Child("Geometry")
	require.NotNil(t, geom)
	assert.Equal(t, int64(100), geom.Int(0))
	assert.Equal(t, "Plane", ObjectName(geom.String(1)))
	assert.Equal(t, "Mesh", geom.String(2))
	assert.Equal(t, []float64{-1, 0, -1, 1, 0, -1, 1, 0, 1, -1, 0, 1}, geom.ChildFloat64s("Vertices"))
	assert.Equal(t, []int32{0, 1, 2, -4}, geom.ChildInt32s("PolygonVertexIndex"))

	model := objs.Child("Model")
	props := model.Child("Properties70").ChildrenNamed("P")
	require.Len(t, props, 2)
	assert.Equal(t, "Lcl Translation", props[0].String(0))
	assert.Equal(t, 1.5, props[0].Float(4))
	assert.Equal(t, -2.0, props[0].Float(6))
	assert.Equal(t, "map1", props[1].String(4))
	assert.Equal(t, int64(1), model.Child("Shading").Int(0))

	conn := doc.Root.Child("Connections").Child("C")
	assert.Equal(t, "OO", conn.String(0))
	assert.Equal(t, int64(200), conn.Int(1))
	assert.Equal(t, int64(0), conn.Int(2))
}

func TestParseASCIIErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("Objects: {\n Model: 1, \"x"))
	assert.Error(t, err)
	_, err = Parse(strings.NewReader("Objects: {\n Model: 1\n"))
	assert.Error(t, err)
}

// binWriter encodes records in the binary layout for tests.
type binWriter struct {
	buf     bytes.Buffer
	version uint32
}

func (w *binWriter) offset(v uint64) []byte {
	if w.version >= wideVersion {
		return binary.LittleEndian.AppendUint64(nil, v)
	}
	return binary.LittleEndian.AppendUint32(nil, uint32(v))
}

func (w *binWriter) prop(v any) []byte {
	var b []byte
	le := binary.LittleEndian
	switch x := v.(type) {
	case int32:
		b = le.AppendUint32([]byte{'I'}, uint32(x))
	case int64:
		b = le.AppendUint64([]byte{'L'}, uint64(x))
	case float64:
		b = le.AppendUint64([]byte{'D'}, math.Float64bits(x))
	case string:
		b = le.AppendUint32([]byte{'S'}, uint32(len(x)))
		b = append(b, x...)
	case []float64:
		var raw []byte
		for _, f := range x {
			raw = le.AppendUint64(raw, math.Float64bits(f))
		}
		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		zw.Write(raw)
		zw.Close()
		b = le.AppendUint32([]byte{'d'}, uint32(len(x)))
		b = le.AppendUint32(b, 1)
		b = le.AppendUint32(b, uint32(z.Len()))
		b = append(b, z.Bytes()...)
	case []int32:
		b = le.AppendUint32([]byte{'i'}, uint32(len(x)))
		b = le.AppendUint32(b, 0)
		b = le.AppendUint32(b, uint32(len(x)*4))
		for _, n := range x {
			b = le.AppendUint32(b, uint32(n))
		}
	}
	return b
}

func (w *binWriter) null() []byte {
	return make([]byte, len(w.offset(0))*3+1)
}

// record encodes r starting at absolute offset start.
func (w *binWriter) record(r *Record, start int) []byte {
	var props []byte
	for _, p := range r.Props {
		props = append(props, w.prop(p)...)
	}
	headLen := len(w.offset(0))*3 + 1 + len(r.Name)
	body := append([]byte{}, props...)
	if len(r.Children) > 0 {
		for _, c := range r.Children {
			body = append(body, w.record(c, start+headLen+len(body))...)
		}
		body = append(body, w.null()...)
	}
	end := start + headLen + len(body)
	var out []byte
	out = append(out, w.offset(uint64(end))...)
	out = append(out, w.offset(uint64(len(r.Props)))...)
	out = append(out, w.offset(uint64(len(props)))...)
	out = append(out, byte(len(r.Name)))
	out = append(out, r.Name...)
	return append(out, body...)
}

func (w *binWriter) document(recs ...*Record) []byte {
	w.buf.Write(BinaryMagic)
	w.buf.Write([]byte{0x1a, 0})
	binary.Write(&w.buf, binary.LittleEndian, w.version)
	for _, r := range recs {
		w.buf.Write(w.record(r, w.buf.Len()))
	}
	w.buf.Write(w.null())
	return w.buf.Bytes()
}

func TestParseBinary(t *testing.T) {
	for _, version := range []uint32{7400, 7500} {
		w := &binWriter{version: version}
		data := w.document(
			&Record{Name: "Objects", Children: []*Record{
				{Name: "Geometry", Props: []any{int64(100), "Plane\x00\x01Geometry", "Mesh"}, Children: []*Record{
					{Name: "Vertices", Props: []any{[]float64{0, 1, 2}}},
					{Name: "PolygonVertexIndex", Props: []any{[]int32{0, 1, -3}}},
				}},
			}},
			&Record{Name: "Connections", Children: []*Record{
				{Name: "C", Props: []any{"OO", int64(100), int64(0)}},
			}},
		)
		assert.True(t, IsBinary(data))
		doc, err := Parse(bytes.NewReader(data))
		require.NoError(t, err, "version %d", version)
		assert.True(t, doc.Binary)
		assert.Equal(t, version, doc.Version)
		geom := doc.Root.Child("Objects").Child("Geometry")
		require.NotNil(t, geom)
		assert.Equal(t, "Geometry::Plane", geom.String(1))
		assert.Equal(t, []float64{0, 1, 2}, geom.ChildFloat64s("Vertices"))
		assert.Equal(t, []int32{0, 1, -3}, geom.ChildInt32s("PolygonVertexIndex"))
		assert.Equal(t, "OO", doc.Root.Child("Connections").Child("C").String(0))
	}
}

func TestParseBinaryTruncated(t *testing.T) {
	w := &binWriter{version: 7400}
	data := w.document(&Record{Name: "Objects", Props: []any{int32(1)}})
	_, err := Parse(bytes.NewReader(data[:len(data)-20]))
	assert.Error(t, err)
	assert.False(t, IsBinary([]byte("; FBX 7.4.0 project file")))
}
