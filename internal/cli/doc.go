// Package cli implements the artgrid command tree.
package cli
