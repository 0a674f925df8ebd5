// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"fmt"

	"github.com/usdfbx/usdfbx/sdf"
)

// ReadScope converts a node of unknown type to a plain scope.
func ReadScope(c *Context) {
	c.Prim().TypeName = sdf.TypeScope
}

// ReadMetadata sets the activation and provenance metadata of the node prim.
func ReadMetadata(c *Context) {
	prim := c.Prim()
	prim.Metadata.Add(sdf.KeyActive, true)
	prim.Metadata.Add(sdf.KeyHidden, false)
	prim.Metadata.Add(sdf.KeyComment, fmt.Sprintf("Converted from %s node %s", c.Node.AttributeType(), c.Node.Name))
}
