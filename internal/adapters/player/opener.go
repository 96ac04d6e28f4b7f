package player

import (
	"fmt"
	"os"
	"os/exec"

	"videovault/internal/ports"
)

// Opener implements ports.PlayerOpener
type Opener struct {
	command string
	args    []string
}

var _ ports.PlayerOpener = (*Opener)(nil)

// NewOpener creates a player opener. An empty command falls back to
// $VIDEOVAULT_PLAYER and then to common players found on $PATH.
func NewOpener(command string, args []string) *Opener {
	return &Opener{command: command, args: args}
}

// OpenFile plays a file and waits for the player to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for playing a file
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	player := o.findPlayer()
	if player == "" {
		return nil, fmt.Errorf("no video player found: set player.command in config")
	}

	args := append(append([]string(nil), o.args...), path)
	cmd := exec.Command(player, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findPlayer returns the player to use
func (o *Opener) findPlayer() string {
	if o.command != "" {
		return o.command
	}

	if player := os.Getenv("VIDEOVAULT_PLAYER"); player != "" {
		return player
	}

	// Try common players
	players := []string{"mpv", "vlc", "ffplay", "xdg-open", "open"}
	for _, player := range players {
		if path, err := exec.LookPath(player); err == nil {
			return path
		}
	}

	return ""
}
