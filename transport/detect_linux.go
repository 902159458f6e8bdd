//go:build linux && !ppc64 && !ppc64le && !noserial

package transport

func detect() Capability {
	return Capability{
		Name: "manual-divisor",
		Open: tarmOpener,
		Rate: DivisorRate{},
	}
}
