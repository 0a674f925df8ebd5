// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"github.com/usdfbx/usdfbx/ident"
)

// UserPropertyPrefix is the namespace of converted user properties.
const UserPropertyPrefix = "userProperties:"

// ReadUserProperties converts the user defined properties of the node
// to custom attributes.
func ReadUserProperties(c *Context) {
	for _, p := range c.Node.Properties.All() {
		if !p.UserDefined() {
			continue
		}
		typ := UserType(p.Type)
		attr := c.CreateCustom(UserPropertyPrefix+ident.Clean(p.Name), typ, c.StaticValue(p, typ), GroupUser)
		c.SampleProperty(attr, p)
	}
}
