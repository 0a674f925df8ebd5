// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SDKVersion is the newest file format version that can be read.
var SDKVersion = semver.MustParse("7.7.0")

// FileVersion returns the semantic version of a file format version
// number such as 7400.
func FileVersion(v uint32) *semver.Version {
	return semver.New(uint64(v/1000), uint64(v%1000/100), uint64(v%100), "", "")
}

// CheckVersion returns an [ErrIncompatibleVersion] error when the file
// version v is newer than [SDKVersion] in its major or minor number.
func CheckVersion(v uint32) error {
	fv := FileVersion(v)
	if fv.Major() > SDKVersion.Major() ||
		(fv.Major() == SDKVersion.Major() && fv.Minor() > SDKVersion.Minor()) {
		return fmt.Errorf("%w: file version %s is newer than supported version %s", ErrIncompatibleVersion, fv, SDKVersion)
	}
	return nil
}
