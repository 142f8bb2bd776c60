// ABOUTME: Version and product identification constants
// ABOUTME: Reported by the remote endpoint and the mDNS advertisement
package version

const (
	// Product is the human-readable product name
	Product = "notewave"
	// Manufacturer identifies who built it
	Manufacturer = "Sendspin"
)

// Version is overridden at build time with -ldflags
var Version = "0.1.0"

// String returns "product/version"
func String() string {
	return Product + "/" + Version
}
