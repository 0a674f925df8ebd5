// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"bytes"

	"github.com/h2non/filetype"
)

// BinaryMagic starts every binary FBX file.
var BinaryMagic = []byte("Kaydara FBX Binary  \x00")

// BinaryType is the [filetype] type of binary FBX files.
var BinaryType = filetype.NewType("fbx", "application/vnd.autodesk.fbx")

func init() {
	filetype.AddMatcher(BinaryType, func(buf []byte) bool {
		return bytes.HasPrefix(buf, BinaryMagic)
	})
}

// IsBinary returns whether head, the start of a file, is a binary FBX header.
func IsBinary(head []byte) bool {
	if len(head) > 8192 {
		head = head[:8192]
	}
	kind, err := filetype.Match(head)
	return err == nil && kind.Extension == BinaryType.Extension
}
