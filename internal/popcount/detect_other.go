//go:build !amd64 && !arm64

package popcount

func init() {
	// Other architectures use the portable kernel unless forced otherwise.
	hasPopcount = false
}
