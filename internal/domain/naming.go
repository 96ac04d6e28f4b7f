package domain

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// ApplyTo selects which fields a rename touches
type ApplyTo string

const (
	ApplyToDisplayName ApplyTo = "displayName"
	ApplyToFilename    ApplyTo = "filename"
	ApplyToBoth        ApplyTo = "both"
)

// Valid reports whether a is a known mode
func (a ApplyTo) Valid() bool {
	switch a {
	case ApplyToDisplayName, ApplyToFilename, ApplyToBoth:
		return true
	}
	return false
}

// RenamesDisplayName reports whether the display name changes
func (a ApplyTo) RenamesDisplayName() bool {
	return a == ApplyToDisplayName || a == ApplyToBoth
}

// RenamesFilename reports whether the file on disk changes
func (a ApplyTo) RenamesFilename() bool {
	return a == ApplyToFilename || a == ApplyToBoth
}

// Transform is a case transformation applied to batch names
type Transform string

const (
	TransformNone  Transform = "none"
	TransformLower Transform = "lower"
	TransformUpper Transform = "upper"
	TransformTitle Transform = "title"
)

// BatchRenameOptions describes how BuildBatchName numbers a selection
type BatchRenameOptions struct {
	Prefix       string      `json:"prefix"`
	Suffix       string      `json:"suffix"`
	StartIndex   int         `json:"startIndex"`
	PadDigits    int         `json:"padDigits"`
	Transform    Transform   `json:"transform"`
	ApplyTo      ApplyTo     `json:"applyTo"`
	KeepOriginal bool        `json:"keepOriginal"`
	Separator    string      `json:"separator"`
	Disk         DiskOptions `json:"disk"`
}

const defaultSeparator = " - "

// BuildBatchName computes the new base name of the item at position index
// of a batch: prefix, padded number, optional original name, suffix.
func BuildBatchName(item Item, index int, opts BatchRenameOptions) string {
	var b strings.Builder
	b.WriteString(opts.Prefix)
	b.WriteString(padNumber(opts.StartIndex+index, opts.PadDigits))

	if opts.KeepOriginal {
		sep := opts.Separator
		if sep == "" {
			sep = defaultSeparator
		}
		b.WriteString(sep)
		b.WriteString(item.DisplayName)
	}
	b.WriteString(opts.Suffix)

	return applyTransform(b.String(), opts.Transform)
}

func padNumber(n, digits int) string {
	if digits <= 0 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%0*d", digits, n)
}

func applyTransform(s string, t Transform) string {
	switch t {
	case TransformLower:
		return strings.ToLower(s)
	case TransformUpper:
		return strings.ToUpper(s)
	case TransformTitle:
		return titleCase(s)
	default:
		return s
	}
}

func titleCase(s string) string {
	runes := []rune(strings.ToLower(s))
	start := true
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start {
				runes[i] = unicode.ToUpper(r)
			}
			start = false
			continue
		}
		start = true
	}
	return string(runes)
}

// FilenameWithOriginalExt returns newBase with the extension of originalFilename.
// Path separators in newBase are replaced so the result stays a single path element.
func FilenameWithOriginalExt(newBase, originalFilename string) string {
	base := strings.TrimSpace(newBase)
	base = strings.NewReplacer("/", "_", "\\", "_").Replace(base)
	ext := path.Ext(originalFilename)
	if ext != "" && strings.HasSuffix(strings.ToLower(base), strings.ToLower(ext)) {
		base = base[:len(base)-len(ext)]
	}
	return base + ext
}

// BaseName returns filename without its extension
func BaseName(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

// NormalizeDir converts p to the library directory form: forward slashes,
// no leading slash, no repeated slashes, trailing slash unless empty.
func NormalizeDir(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "/") + "/"
}

// SplitPath splits a library-relative path into directory and filename
func SplitPath(p string) (dir, filename string) {
	p = strings.ReplaceAll(p, "\\", "/")
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	return NormalizeDir(p[:i]), p[i+1:]
}

// JoinPath joins a normalized directory and a filename
func JoinPath(dir, filename string) string {
	return dir + filename
}
