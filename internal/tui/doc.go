// Package tui is the terminal presenter of the editor.
//
// Every menu and prompt runs as its own bubbletea program that exits as soon
// as the operator answers, so the editing loop stays a plain sequential
// program. Ctrl+C ends the current program with ErrInterrupted.
package tui
