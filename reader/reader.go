// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reader converts an imported FBX scene into a layer data
// store, running a fixed list of conversion pipelines for every node
// according to its attribute type.
package reader

import (
	"log/slog"

	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/logx"
	"github.com/usdfbx/usdfbx/sdf"
)

var (
	// ErrUnableToOpen is returned when the file cannot be imported.
	ErrUnableToOpen = fbx.ErrUnableToOpen

	// ErrIncompatibleVersion is returned for files of an unsupported version.
	ErrIncompatibleVersion = fbx.ErrIncompatibleVersion
)

// RootName is the name of the synthetic root prim all nodes go under.
const RootName = "ROOT"

// Documentation is the documentation string of every converted layer.
const Documentation = "Generated by UsdFbx"

// Options configure [Open].
type Options struct {
	// Manager imports the file, [fbx.DefaultManager] if nil.
	Manager *fbx.Manager

	// Logger receives the conversion warnings, [slog.Default] if nil.
	Logger *slog.Logger
}

// Open imports the FBX file at path and converts it.
func Open(path string, opts Options) (*sdf.Store, error) {
	m := opts.Manager
	if m == nil {
		m = fbx.DefaultManager()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("importing", "path", path, "channel", logx.ChannelReader)
	scene, err := m.Import(path)
	if err != nil {
		return nil, err
	}
	return Convert(scene, logger), nil
}

// Convert converts scene into a new store. The scene is modified: its
// layers are baked and it is converted to Y-up and centimeters.
func Convert(scene *fbx.Scene, logger *slog.Logger) *sdf.Store {
	if logger == nil {
		logger = slog.Default()
	}
	store := sdf.NewStore()
	base := &Context{
		Scene:    scene,
		Store:    store,
		Logger:   logger,
		RootPath: sdf.AbsoluteRoot.AppendChild(RootName),
	}
	base.warnAxisSystem()

	stack := scene.AnimStack()
	if stack != nil {
		scene.BakeLayers(stack)
	}
	scene.ConvertAxisSystem(fbx.MayaYUp)
	scene.ConvertUnit(fbx.Centimeter)
	base.ScaleFactor = scene.ConversionFactor

	pseudo := store.PseudoRoot()
	pseudo.Metadata.Add(sdf.KeyDocumentation, Documentation)
	pseudo.Metadata.Add(sdf.KeyUpAxis, sdf.Token("Y"))
	pseudo.Metadata.Add(sdf.KeyMetersPerUnit, 0.01)

	if stack != nil {
		fps := scene.Settings.FrameRate()
		start, stop := stack.FrameRange(fps)
		base.Layer = stack.BaseLayer()
		base.Span = Span{Start: start, Stop: stop, FPS: fps}
		pseudo.Metadata.Add(sdf.KeyStartTimeCode, float64(start))
		pseudo.Metadata.Add(sdf.KeyEndTimeCode, float64(stop))
		pseudo.Metadata.Add(sdf.KeyTimeCodesPerSecond, fps)
		pseudo.Metadata.Add(sdf.KeyFramesPerSecond, fps)
	} else {
		base.Span = Span{FPS: scene.Settings.FrameRate()}
	}

	root := store.GetOrAddPrim(base.RootPath)
	pseudo.AddChild(RootName)
	if scene.HasSkeleton() {
		root.TypeName = sdf.TypeSkelRoot
		AddAPISchema(root, "SkelBindingAPI")
	} else {
		root.TypeName = sdf.TypeScope
	}
	root.Metadata.Add(sdf.KeyKind, sdf.Token("component"))
	pseudo.Metadata.Add(sdf.KeyDefaultPrim, sdf.Token(RootName))

	cv := &converter{scene: scene, store: store, base: base, names: map[*fbx.Node]string{}, joints: map[*fbx.Node][]*fbx.Node{}}
	base.conv = cv
	cv.nameNodes(scene.Root)
	for _, n := range scene.Root.Children {
		cv.walk(n, base.RootPath)
	}
	logger.Debug("converted", "file", scene.FileName, "prims", store.Len(), "channel", logx.ChannelReader)
	return store
}

// warnAxisSystem warns about up axes that do not convert cleanly, and
// about scenes authored in another up axis than they were exported in.
func (c *Context) warnAxisSystem() {
	gs := &c.Scene.Settings
	file := c.Scene.FileName
	if gs.Axis.UpSign < 0 {
		c.Warnf("%s: Unsupported coordinate system. UpAxis sign is negative, this may yield inconsistent results!", file)
	}
	if gs.Axis.Up == 0 {
		c.Warnf("%s: Unsupported coordinate system. X-up is not supported by Usd specification!", file)
	}
	authored := gs.OriginalUpAxis
	if authored < 0 {
		authored = gs.Axis.Up
	}
	if authored != gs.Axis.Up {
		c.Warnf("%s: This scene was exported with %s-up but originally authored in %s-up.",
			file, gs.Axis.UpAxisName(), fbx.AxisName(authored))
	}
}
