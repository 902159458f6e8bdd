//go:build !noserial && (!linux || ppc64 || ppc64le)

package transport

// POWER Linux is here too: x/sys has no termios2 ioctls for it, while the
// go.bug.st port sets any rate itself.
func detect() Capability {
	return Capability{
		Name: "standard-rate",
		Open: bugstOpener,
		Rate: DirectRate{},
	}
}
