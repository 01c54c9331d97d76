// Package ui provides semantic text formatting for terminal output.
//
// Each Formatter carries a color for capable terminals and a plain-text
// decoration used when color is disabled (NO_COLOR, dumb terminals,
// redirected output), so messages stay readable either way.
package ui
