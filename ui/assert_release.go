//go:build !cellwin_debug

package ui

const debugChecks = false
