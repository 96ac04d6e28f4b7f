package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"videovault/internal/application"
	"videovault/internal/domain"
)

// renameFunc is swapped in tests to simulate EXDEV and other rename errors
var renameFunc = os.Rename

// Disk implements ports.DiskOperator on the local filesystem. Every item
// path is relative to one of the configured roots.
type Disk struct {
	roots  map[string]string
	logger *slog.Logger
}

// NewDisk creates a disk adapter over roots (root key to directory)
func NewDisk(roots map[string]string, logger *slog.Logger) *Disk {
	if logger == nil {
		logger = slog.Default()
	}
	return &Disk{roots: ExpandRoots(roots), logger: logger}
}

// ExpandRoots resolves ~ and cleans every root directory
func ExpandRoots(roots map[string]string) map[string]string {
	expanded := make(map[string]string, len(roots))
	for key, dir := range roots {
		// Expand ~ to home directory
		if strings.HasPrefix(dir, "~") {
			home, _ := os.UserHomeDir()
			dir = filepath.Join(home, dir[1:])
		}
		expanded[key] = filepath.Clean(dir)
	}
	return expanded
}

// Root returns the directory of rootKey
func (d *Disk) Root(rootKey string) (string, error) {
	dir, ok := d.roots[rootKey]
	if !ok {
		return "", fmt.Errorf("%w: %q", application.ErrUnknownRoot, rootKey)
	}
	return dir, nil
}

// AbsPath returns the absolute path of a library-relative path
func (d *Disk) AbsPath(rootKey, relPath string) (string, error) {
	root, err := d.Root(rootKey)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(relPath)), nil
}

// AttemptRename renames the file within its directory
func (d *Disk) AttemptRename(ctx context.Context, loc domain.Location, requestedFilename string, opts domain.DiskOptions) (domain.DiskResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DiskResult{}, err
	}
	root, err := d.Root(loc.RootKey)
	if err != nil {
		return domain.DiskResult{}, unknownRoot("rename", loc, err)
	}

	src := filepath.Join(root, filepath.FromSlash(loc.Path()))
	dstDir := filepath.Join(root, filepath.FromSlash(loc.Dir))
	return d.place("rename", loc, src, dstDir, requestedFilename, opts)
}

// MoveFile moves the file into targetDir of the same root, creating the
// directory if needed. The file keeps its name unless opts.PreferredName is set.
func (d *Disk) MoveFile(ctx context.Context, loc domain.Location, targetDir string, opts domain.DiskOptions) (domain.DiskResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DiskResult{}, err
	}
	root, err := d.Root(loc.RootKey)
	if err != nil {
		return domain.DiskResult{}, unknownRoot("move", loc, err)
	}

	name := loc.Filename
	if opts.PreferredName != "" {
		name = opts.PreferredName
	}

	src := filepath.Join(root, filepath.FromSlash(loc.Path()))
	dstDir := filepath.Join(root, filepath.FromSlash(domain.NormalizeDir(targetDir)))
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return failure(fmt.Sprintf("failed to create directory: %v", err), domain.CodeIO), nil
	}
	return d.place("move", loc, src, dstDir, name, opts)
}

// DeleteFile removes the file. A file that is already gone counts as deleted.
func (d *Disk) DeleteFile(ctx context.Context, loc domain.Location) (domain.DiskResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DiskResult{}, err
	}
	path, err := d.AbsPath(loc.RootKey, loc.Path())
	if err != nil {
		return domain.DiskResult{}, unknownRoot("delete", loc, err)
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.logger.Warn("file already gone", "id", loc.ID, "path", path)
			return domain.DiskResult{Success: true, Message: "already removed"}, nil
		}
		return failure(fmt.Sprintf("failed to delete: %v", err), domain.CodeIO), nil
	}

	d.logger.Debug("file deleted", "id", loc.ID, "path", path)
	return domain.DiskResult{Success: true}, nil
}

// place renames src to dstDir/name, applying the conflict options
func (d *Disk) place(op string, loc domain.Location, src, dstDir, name string, opts domain.DiskOptions) (domain.DiskResult, error) {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return failure(fmt.Sprintf("source not found: %s", loc.Path()), domain.CodeNotFound), nil
		}
		return failure(err.Error(), domain.CodeIO), nil
	}

	requested := name
	dst := filepath.Join(dstDir, name)
	if dst == src {
		return domain.DiskResult{Success: true}, nil
	}

	if dstInfo, err := os.Lstat(dst); err == nil {
		switch {
		case os.SameFile(srcInfo, dstInfo):
			// Case-only rename on a case-insensitive filesystem
		case dstInfo.IsDir():
			return failure(fmt.Sprintf("target is a directory: %s", name), domain.CodeConflict), nil
		case opts.Overwrite:
		case opts.ConflictStrategy == domain.ConflictKeepBoth:
			name = allocName(dstDir, name)
			dst = filepath.Join(dstDir, name)
		default:
			return failure(fmt.Sprintf("target already exists: %s", name), domain.CodeConflict), nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return failure(err.Error(), domain.CodeIO), nil
	}

	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return domain.DiskResult{}, &application.DiskError{
				Op:      op,
				ID:      loc.ID,
				Code:    domain.CodeCrossDevice,
				Message: fmt.Sprintf("%q and %q are on different filesystems", src, dst),
				Err:     fmt.Errorf("%w: %v", application.ErrCrossDevice, err),
			}
		}
		return failure(fmt.Sprintf("failed to %s: %v", op, err), domain.CodeIO), nil
	}

	d.logger.Debug("file placed", "op", op, "id", loc.ID, "from", src, "to", dst)

	res := domain.DiskResult{Success: true}
	if name != requested {
		res.ResolvedName = name
	}
	return res, nil
}

// allocName returns name, or name__N with the smallest N >= 2 that does not exist in dir
func allocName(dir, name string) string {
	if _, err := os.Lstat(filepath.Join(dir, name)); errors.Is(err, fs.ErrNotExist) {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s__%d%s", base, n, ext)
		if _, err := os.Lstat(filepath.Join(dir, cand)); errors.Is(err, fs.ErrNotExist) {
			return cand
		}
	}
}

func failure(message, code string) domain.DiskResult {
	return domain.DiskResult{Success: false, Message: message, Code: code}
}

func unknownRoot(op string, loc domain.Location, err error) error {
	return &application.DiskError{
		Op:      op,
		ID:      loc.ID,
		Code:    domain.CodeUnknownRoot,
		Message: err.Error(),
		Err:     err,
	}
}
