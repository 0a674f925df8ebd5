// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// TicksPerSecond is the resolution of [Time].
const TicksPerSecond = 46186158000

// Time is an FBX time in ticks.
type Time int64

// Seconds returns t in seconds.
func (t Time) Seconds() float64 {
	return float64(t) / TicksPerSecond
}

// Frame returns t as a fractional frame number at fps.
func (t Time) Frame(fps float64) float64 {
	return float64(t) * fps / TicksPerSecond
}

// FrameCount returns the whole frame containing t at fps.
func (t Time) FrameCount(fps float64) int64 {
	return int64(math.Floor(t.Frame(fps) + 1e-6))
}

// FrameTime returns the time of the given frame at fps.
func FrameTime(frame, fps float64) Time {
	return Time(math.Round(frame * TicksPerSecond / fps))
}

// TimeMode is the frame rate mode of a scene.
type TimeMode int32

const (
	TimeModeDefault TimeMode = iota
	TimeModeFrames120
	TimeModeFrames100
	TimeModeFrames60
	TimeModeFrames50
	TimeModeFrames48
	TimeModeFrames30
	TimeModeFrames30Drop
	TimeModeNTSCDropFrame
	TimeModeNTSCFullFrame
	TimeModePAL
	TimeModeFrames24
	TimeModeFrames1000
	TimeModeFilmFullFrame
	TimeModeCustom
	TimeModeFrames96
	TimeModeFrames72
	TimeModeFrames59dot94
	TimeModeFrames119dot88
)

var frameRates = [...]float64{
	30, 120, 100, 60, 50, 48, 30, 30, 30000.0 / 1001, 30000.0 / 1001, 25, 24, 1000,
	24000.0 / 1001, 0, 96, 72, 60000.0 / 1001, 120000.0 / 1001,
}

// FrameRate returns the frames per second of the mode, custom for
// TimeModeCustom.
func (m TimeMode) FrameRate(custom float64) float64 {
	if m == TimeModeCustom {
		if custom <= 0 {
			return 30
		}
		return custom
	}
	if m < 0 || int(m) >= len(frameRates) {
		return 30
	}
	return frameRates[m]
}

// BlendMode is how an animation layer combines with the layers below it.
type BlendMode int32

const (
	BlendAdditive BlendMode = iota
	BlendOverride
	BlendOverridePassthrough
)

// AnimStack is an animation take: a time span and a stack of layers,
// the first of which is the base layer.
type AnimStack struct {
	Object

	LocalStart, LocalStop Time

	Layers []*AnimLayer
}

// BaseLayer returns the bottom layer, or nil.
func (s *AnimStack) BaseLayer() *AnimLayer {
	if s == nil || len(s.Layers) == 0 {
		return nil
	}
	return s.Layers[0]
}

// FrameRange returns the first and last whole frames of the stack at fps.
func (s *AnimStack) FrameRange(fps float64) (start, stop int64) {
	return s.LocalStart.FrameCount(fps), s.LocalStop.FrameCount(fps)
}

// FrameTimes returns the time of every frame of the stack at fps.
func (s *AnimStack) FrameTimes(fps float64) []Time {
	start, stop := s.FrameRange(fps)
	var out []Time
	for f := start; f <= stop; f++ {
		out = append(out, FrameTime(float64(f), fps))
	}
	return out
}

// AnimLayer is one layer of an animation stack.
type AnimLayer struct {
	Object

	Stack *AnimStack

	// Weight is the layer weight in percent.
	Weight float64

	BlendMode BlendMode

	// CurveNodes are the curve nodes of the layer.
	CurveNodes []*CurveNode
}

// Interpolation is the interpolation from a key to the next one.
type Interpolation int32

const (
	InterpolationConstant Interpolation = 0x02
	InterpolationLinear   Interpolation = 0x04
	InterpolationCubic    Interpolation = 0x08
)

// constantNext makes a constant key take the value of the next key.
const constantNext = 0x100

// Key is one key of an animation curve.
type Key struct {
	Time Time

	Value float64

	Interpolation Interpolation

	// ConstantNext holds the next key's value for constant keys.
	ConstantNext bool

	// RightSlope and NextLeftSlope are the cubic tangents, in value per second.
	RightSlope, NextLeftSlope float64
}

// Curve is a keyed animation curve of one channel.
type Curve struct {
	Object

	// Default is the value of a curve without keys.
	Default float64

	Keys []Key
}

// Evaluate returns the value of the curve at t, holding the first and
// last key values outside the keyed range.
func (c *Curve) Evaluate(t Time) float64 {
	n := len(c.Keys)
	switch {
	case n == 0:
		return c.Default
	case t <= c.Keys[0].Time:
		return c.Keys[0].Value
	case t >= c.Keys[n-1].Time:
		return c.Keys[n-1].Value
	}
	i := sort.Search(n, func(i int) bool { return c.Keys[i].Time > t }) - 1
	k0, k1 := c.Keys[i], c.Keys[i+1]
	if t == k0.Time {
		return k0.Value
	}
	u := float64(t-k0.Time) / float64(k1.Time-k0.Time)
	switch k0.Interpolation {
	case InterpolationConstant:
		if k0.ConstantNext {
			return k1.Value
		}
		return k0.Value
	case InterpolationCubic:
		dt := (k1.Time - k0.Time).Seconds()
		u2, u3 := u*u, u*u*u
		h00 := 2*u3 - 3*u2 + 1
		h10 := u3 - 2*u2 + u
		h01 := -2*u3 + 3*u2
		h11 := u3 - u2
		return h00*k0.Value + h10*dt*k0.RightSlope + h01*k1.Value + h11*dt*k0.NextLeftSlope
	}
	return k0.Value + (k1.Value-k0.Value)*u
}

// Times returns the key times of the curve.
func (c *Curve) Times() []Time {
	out := make([]Time, len(c.Keys))
	for i, k := range c.Keys {
		out[i] = k.Time
	}
	return out
}

// Channel is one animated component of a curve node.
type Channel struct {
	// Name is the channel name without the "d|" prefix, such as "X".
	Name string

	Default float64

	// Curve is nil for channels that are not keyed.
	Curve *Curve
}

// CurveNode groups the channel curves animating one property on one layer.
type CurveNode struct {
	Object

	Layer *AnimLayer

	Channels []Channel

	// Target is the animated property, nil until connected.
	Target *Property
}

// channelIndex returns the component index of a channel name.
func channelIndex(name string, pos int) int {
	switch name {
	case "X", "R":
		return 0
	case "Y", "G":
		return 1
	case "Z", "B":
		return 2
	case "W", "A":
		return 3
	}
	return pos
}

// channel returns the channel with the given name, adding it as needed.
func (cn *CurveNode) channel(name string) *Channel {
	name = strings.TrimPrefix(name, "d|")
	for i := range cn.Channels {
		if cn.Channels[i].Name == name {
			return &cn.Channels[i]
		}
	}
	cn.Channels = append(cn.Channels, Channel{Name: name})
	return &cn.Channels[len(cn.Channels)-1]
}

// SetCurve connects c to the named channel.
func (cn *CurveNode) SetCurve(name string, c *Curve) {
	cn.channel(name).Curve = c
}

// SetDefault sets the default of the named channel.
func (cn *CurveNode) SetDefault(name string, v float64) {
	cn.channel(name).Default = v
}

// HasCurves returns whether any channel is keyed.
func (cn *CurveNode) HasCurves() bool {
	for _, ch := range cn.Channels {
		if ch.Curve != nil && len(ch.Curve.Keys) > 0 {
			return true
		}
	}
	return false
}

// Curves returns the keyed curves of the node.
func (cn *CurveNode) Curves() []*Curve {
	var out []*Curve
	for _, ch := range cn.Channels {
		if ch.Curve != nil {
			out = append(out, ch.Curve)
		}
	}
	return out
}

// Evaluate returns base with the channels of the node evaluated at t.
// Channels without a curve take their default value.
func (cn *CurveNode) Evaluate(t Time, base []float64) []float64 {
	out := slices.Clone(base)
	for pos, ch := range cn.Channels {
		i := channelIndex(ch.Name, pos)
		for len(out) <= i {
			out = append(out, 0)
		}
		if ch.Curve != nil && len(ch.Curve.Keys) > 0 {
			out[i] = ch.Curve.Evaluate(t)
		} else {
			out[i] = ch.Default
		}
	}
	return out
}

// keyedChannels returns the component indexes of the keyed channels.
func (cn *CurveNode) keyedChannels() []int {
	var out []int
	for pos, ch := range cn.Channels {
		if ch.Curve != nil && len(ch.Curve.Keys) > 0 {
			out = append(out, channelIndex(ch.Name, pos))
		}
	}
	return out
}

// KeyTimes returns the sorted union of the key times of the node.
func (cn *CurveNode) KeyTimes() []Time {
	var out []Time
	for _, c := range cn.Curves() {
		out = append(out, c.Times()...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Sampled returns a curve node on layer holding one linear key per
// time in times, for every component of the values sampled by fn.
func Sampled(layer *AnimLayer, target *Property, times []Time, fn func(t Time) []float64) *CurveNode {
	cn := &CurveNode{Layer: layer, Target: target}
	if target != nil {
		cn.Name = target.Name
	}
	names := []string{"X", "Y", "Z", "W"}
	for _, t := range times {
		vals := fn(t)
		for i, v := range vals {
			name := strconv.Itoa(i)
			switch {
			case len(vals) == 1 && target != nil:
				name = target.Name
			case i < len(names):
				name = names[i]
			}
			ch := cn.channel(name)
			if ch.Curve == nil {
				ch.Default = v
				ch.Curve = &Curve{Default: v}
			}
			ch.Curve.Keys = append(ch.Curve.Keys, Key{Time: t, Value: v, Interpolation: InterpolationLinear})
		}
	}
	return cn
}
