package main

// Default limits for CLI commands.
const (
	DefaultListLimit = 50
	DefaultLogLimit  = 20
	PreviewRunes     = 60
)
