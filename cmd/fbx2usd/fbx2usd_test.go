// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/base/iox/yamlx"
	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usdfbx/usdfbx/config"
	"github.com/usdfbx/usdfbx/fileformat"
	"github.com/usdfbx/usdfbx/logx"
)

const triangleDoc = `; FBX 7.4.0 project file
FBXHeaderExtension:  {
	FBXVersion: 7400
}
Objects:  {
	Geometry: 10, "Geometry::Tri", "Mesh" {
		Vertices: *9 {
			a: 0,0,0,1,0,0,0,1,0
		}
		PolygonVertexIndex: *3 {
			a: 0,1,-3
		}
	}
	Model: 20, "Model::Tri", "Mesh" {
		Version: 232
	}
}
Connections:  {
	C: "OO",20,0
	C: "OO",10,20
}
`

func writeTriangle(t *testing.T, dir, name string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(triangleDoc), 0o644))
	return path
}

func TestOutputPath(t *testing.T) {
	c := config.Defaults()
	p, err := OutputPath(c, filepath.Join("a", "b", "model.fbx"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("a", "b", "model.usda"), p)

	c.Output = "out"
	c.Ext = ".usd"
	p, err = OutputPath(c, filepath.Join("a", "model.FBX"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "model.usd"), p)
}

func TestExpandInputs(t *testing.T) {
	_, err := expandInputs(nil)
	assert.Error(t, err)

	dir := t.TempDir()
	_, err = expandInputs([]string{filepath.Join(dir, "missing.fbx")})
	assert.ErrorContains(t, err, "not found")

	in := writeTriangle(t, dir, "tri.fbx")
	got, err := expandInputs([]string{in})
	require.NoError(t, err)
	assert.Equal(t, []string{in}, got)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := writeTriangle(t, dir, "tri.fbx")
	c := config.Defaults()
	c.Output = filepath.Join(dir, "out")

	rec := logx.NewRecorder(nil)
	out, err := convertFile(c, in, rec.Logger())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "tri.usda"), out)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, "#usda 1.0\n"))
	assert.Contains(t, s, `def Mesh "Tri"`)

	_, err = convertFile(c, filepath.Join(dir, "tri.obj"), rec.Logger())
	assert.ErrorContains(t, err, "unsupported input file")
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	c := config.Defaults()
	c.Quiet = true
	c.Inputs = []string{writeTriangle(t, dir, "a.fbx"), writeTriangle(t, dir, "b.fbx")}
	require.NoError(t, Convert(c))
	assert.FileExists(t, filepath.Join(dir, "a.usda"))
	assert.FileExists(t, filepath.Join(dir, "b.usda"))
}

func TestSummarize(t *testing.T) {
	l, err := fileformat.OpenLayer(writeTriangle(t, t.TempDir(), "tri.fbx"))
	require.NoError(t, err)

	all := Summarize(l.Data(), nil)
	require.Len(t, all, 2)
	assert.Equal(t, "/ROOT", all[0].Path)
	assert.Equal(t, "Scope", all[0].Type)
	assert.Equal(t, "/ROOT/Tri", all[1].Path)
	assert.Equal(t, "Mesh", all[1].Type)

	var names []string
	for _, p := range all[1].Properties {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "points")
	assert.Contains(t, names, "faceVertexCounts")

	mesh := Summarize(l.Data(), glob.MustCompile("/ROOT/*", '/'))
	require.Len(t, mesh, 1)
	assert.Equal(t, "/ROOT/Tri", mesh[0].Path)
}

func TestEncode(t *testing.T) {
	layers := []LayerInfo{{File: "tri.fbx", Prims: []PrimInfo{
		{Path: "/ROOT", Type: "Scope"},
		{Path: "/ROOT/Tri", Type: "Mesh", Properties: []PropertyInfo{{Name: "points", Type: "point3f[]"}}},
	}}}

	var b bytes.Buffer
	require.NoError(t, Encode(&b, "json", layers))
	assert.Contains(t, b.String(), "\n\t{\n")
	var fromJSON []LayerInfo
	require.NoError(t, jsonx.ReadBytes(&fromJSON, b.Bytes()))
	assert.Equal(t, layers, fromJSON)

	b.Reset()
	require.NoError(t, Encode(&b, "yaml", layers))
	var fromYAML []LayerInfo
	require.NoError(t, yamlx.ReadBytes(&fromYAML, b.Bytes()))
	assert.Equal(t, layers, fromYAML)

	b.Reset()
	require.NoError(t, Encode(&b, "toml", layers))
	assert.Contains(t, b.String(), "[[layers]]")
	var fromTOML TOMLLayers
	require.NoError(t, tomlx.ReadBytes(&fromTOML, b.Bytes()))
	assert.Equal(t, layers, fromTOML.Layers)

	assert.Error(t, Encode(&b, "xml", layers))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	in := writeTriangle(t, dir, "tri.fbx")
	out := filepath.Join(dir, "tri.usda")
	c := config.Defaults()
	c.Debounce = 10

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, c, []string{in}, logx.NewRecorder(nil).Logger())
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.Remove(out))
	require.NoError(t, os.WriteFile(in, []byte(triangleDoc), 0o644))
	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
