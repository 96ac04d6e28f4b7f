package application

import (
	"errors"
	"testing"

	"videovault/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "newName",
			value:     "Holiday",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "newName",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "targetDir",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateIDs(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr bool
	}{
		{name: "single id", ids: []string{"a"}, wantErr: false},
		{name: "duplicates allowed", ids: []string{"a", "a"}, wantErr: false},
		{name: "empty list", ids: nil, wantErr: true},
		{name: "blank entry", ids: []string{"a", " "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIDs("ids", tt.ids)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIDs() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTargetDir(t *testing.T) {
	tests := []struct {
		dir     string
		wantErr bool
	}{
		{dir: "", wantErr: false},
		{dir: "movies/2024", wantErr: false},
		{dir: "../outside", wantErr: true},
		{dir: "movies\\..\\..", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			err := ValidateTargetDir("targetDir", tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTargetDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBatchOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    domain.BatchRenameOptions
		wantErr bool
	}{
		{name: "defaults", opts: domain.BatchRenameOptions{}, wantErr: false},
		{name: "full", opts: domain.BatchRenameOptions{Prefix: "X", StartIndex: 1, PadDigits: 2, Transform: domain.TransformUpper, ApplyTo: domain.ApplyToBoth}, wantErr: false},
		{name: "negative start", opts: domain.BatchRenameOptions{StartIndex: -1}, wantErr: true},
		{name: "too many digits", opts: domain.BatchRenameOptions{PadDigits: 40}, wantErr: true},
		{name: "unknown transform", opts: domain.BatchRenameOptions{Transform: "snake"}, wantErr: true},
		{name: "unknown apply mode", opts: domain.BatchRenameOptions{ApplyTo: "path"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatchOptions(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBatchOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUndoErrorIs(t *testing.T) {
	var err error = &UndoError{UndoID: "u1", Kind: "rename", Failed: 1, Total: 3}
	if !errors.Is(err, ErrUndoFailed) {
		t.Errorf("expected errors.Is(err, ErrUndoFailed)")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("UndoError must not match ErrNotFound")
	}
	want := "undo rename u1: 1 of 3 items failed to revert"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseApplyTo(t *testing.T) {
	got, err := ParseApplyTo("")
	if err != nil || got != domain.ApplyToBoth {
		t.Errorf("ParseApplyTo(\"\") = %q, %v", got, err)
	}
	if _, err := ParseApplyTo("bogus"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}
