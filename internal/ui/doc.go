// Package ui provides styled terminal output for the bopi CLI.
package ui
