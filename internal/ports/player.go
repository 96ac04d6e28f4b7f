package ports

import "os/exec"

// PlayerOpener defines the interface for playing a video in an external player
type PlayerOpener interface {
	// OpenFile starts the configured player on path and waits for it to exit
	OpenFile(path string) error

	// Command returns an exec.Cmd for playing a file
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
