// SPDX-License-Identifier: Unlicense OR MIT

// Package xresource reads values from the X resource database, as
// published by xrdb in the RESOURCE_MANAGER property of the root window.
package xresource

import (
	"strconv"
	"strings"
)

// DefaultDPI is the resolution that corresponds to a scale of 1.
const DefaultDPI = 96

// Database is a parsed resource database.
type Database map[string]string

// Parse parses the contents of RESOURCE_MANAGER. Lines have the form
// "name: value". Comments start with '!'. Later entries override
// earlier ones.
func Parse(s string) Database {
	db := make(Database)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '!' || line[0] == '#' {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		db[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return db
}

// Scale returns Xft.dpi divided by DefaultDPI, or 1 if the resource is
// missing or malformed.
func (db Database) Scale() float32 {
	v, ok := db["Xft.dpi"]
	if !ok {
		return 1
	}
	dpi, err := strconv.ParseFloat(v, 32)
	if err != nil || dpi <= 0 {
		return 1
	}
	return float32(dpi) / DefaultDPI
}
