// Package report renders inspector contents as text for terminals and
// logs. Colors are applied only when the destination writer is a terminal.
package report
