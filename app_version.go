package main

import (
	"runtime/debug"
)

// set with -ldflags "-X main.app_ver=..."
var app_ver string = ""

// app_version returns the module version recorded by go install, falling back
// to the ldflags-injected one.
func app_version() string {
	if v, ok := debug.ReadBuildInfo(); ok && v.Main.Version != "" && v.Main.Version != "(devel)" {
		return v.Main.Version
	}
	if app_ver != "" {
		return app_ver
	}
	return "devel"
}
