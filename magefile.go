//+build mage

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary     = "check_fr24feed"
	versionPkg = "github.com/prometheus/common/version"
)

func ldflags() string {
	rev, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		rev = "unknown"
	}
	branch, err := sh.Output("git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = "unknown"
	}
	ver := os.Getenv("VERSION")
	if ver == "" {
		ver = "2022031701"
	}
	user := os.Getenv("USER")

	return strings.Join([]string{
		"-s", "-w",
		fmt.Sprintf("-X %s.Version=%s", versionPkg, ver),
		fmt.Sprintf("-X %s.Revision=%s", versionPkg, rev),
		fmt.Sprintf("-X %s.Branch=%s", versionPkg, branch),
		fmt.Sprintf("-X %s.BuildUser=%s", versionPkg, user),
		fmt.Sprintf("-X %s.BuildDate=%s", versionPkg, time.Now().UTC().Format("20060102-15:04:05")),
	}, " ")
}

// Runs go mod download.
func Deps() error {
	return sh.Run("go", "mod", "download")
}

// Builds the plugin binary into ./dist.
func Build() error {
	mg.Deps(Deps)
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "dist/"+binary, "./cmd/check-fr24feed")
}

// Build for arm32, the usual Raspberry Pi feeder.
func BuildARM32() error {
	mg.Deps(Deps)
	env := map[string]string{"GOOS": "linux", "GOARCH": "arm", "GOARM": "7"}
	return sh.RunWithV(env, "go", "build", "-ldflags", ldflags(), "-o", "dist/"+binary+"-linux-armv7", "./cmd/check-fr24feed")
}

func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Copies the binary into the monitoring plugin directory (PLUGIN_DIR, default /usr/lib/nagios/plugins).
func Install() error {
	mg.Deps(Build)
	dir := os.Getenv("PLUGIN_DIR")
	if dir == "" {
		dir = "/usr/lib/nagios/plugins"
	}
	return sh.Copy(dir+"/"+binary, "dist/"+binary)
}
