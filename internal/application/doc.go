// Package application provides application initialization and dependency wiring.
// It connects the resolved settings, the logger and the config locator, and
// renders the located node configuration, keeping the main package focused on
// CLI parsing and exit codes.
package application
