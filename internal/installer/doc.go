// Package installer fetches the prebuilt super-resolution tool for the host
// platform, checks it against known digests, and unpacks it into the install
// directory.
package installer
