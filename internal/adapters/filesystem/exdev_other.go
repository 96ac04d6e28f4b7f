//go:build !unix

package filesystem

// Cross-device renames surface as generic errors on other platforms
func isEXDEV(err error) bool {
	return false
}
