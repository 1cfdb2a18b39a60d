// Package internal has output, logging and diagnostics logic shared by the
// heattrap commands.
package internal
