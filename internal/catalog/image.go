// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"os"
	"strconv"
	"strings"
)

// DefaultImageBaseURL hosts one poster per MovieLens id as "{id}.jpg".
const DefaultImageBaseURL = "https://liangfgithub.github.io/MovieImages"

// ImageURL returns the poster URL for a movie id under DefaultImageBaseURL.
func ImageURL(id int) string {
	return ImageURLWithBase(DefaultImageBaseURL, id)
}

// ImageURLWithBase returns "{base}/{id}.jpg". An empty base falls back to
// DefaultImageBaseURL.
func ImageURLWithBase(base string, id int) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + "/" + strconv.Itoa(id) + ".jpg"
}

func openFile(path string) (*os.File, error) {
	return os.Open(path) //nolint:gosec // path comes from operator configuration
}
