package player

import (
	"slices"
	"testing"
)

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		args     []string
		env      string
		wantPath string
		wantArgs []string
	}{
		{
			name:     "configured command with args",
			command:  "mpv",
			args:     []string{"--fs"},
			env:      "vlc",
			wantPath: "mpv",
			wantArgs: []string{"mpv", "--fs", "/videos/a.mp4"},
		},
		{
			name:     "environment fallback",
			env:      "vlc",
			wantPath: "vlc",
			wantArgs: []string{"vlc", "/videos/a.mp4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VIDEOVAULT_PLAYER", tt.env)
			o := NewOpener(tt.command, tt.args)

			cmd, err := o.Command("/videos/a.mp4")
			if err != nil {
				t.Fatalf("Command() error = %v", err)
			}
			if cmd.Args[0] != tt.wantPath {
				t.Errorf("player = %q, want %q", cmd.Args[0], tt.wantPath)
			}
			if !slices.Equal(cmd.Args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}

func TestOpener_CommandDoesNotAliasArgs(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "--fs"
	o := NewOpener("mpv", base)

	a, _ := o.Command("a.mp4")
	b, _ := o.Command("b.mp4")
	if a.Args[2] != "a.mp4" || b.Args[2] != "b.mp4" {
		t.Errorf("args aliased: %v %v", a.Args, b.Args)
	}
}
