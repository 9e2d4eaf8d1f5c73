package domain

import (
	"fmt"
	"strings"
)

// Mode selects what happens to the source file after a verified transfer.
type Mode string

const (
	ModeCopy Mode = "copy"
	ModeMove Mode = "move"
)

// CollisionPolicy selects how a destination name conflict is resolved.
type CollisionPolicy string

const (
	CollisionRename    CollisionPolicy = "rename"
	CollisionSkip      CollisionPolicy = "skip"
	CollisionOverwrite CollisionPolicy = "overwrite"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCopy:
		return ModeCopy, nil
	case ModeMove:
		return ModeMove, nil
	}
	return "", fmt.Errorf("unknown mode %q, expected copy or move", s)
}

func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case CollisionRename:
		return CollisionRename, nil
	case CollisionSkip:
		return CollisionSkip, nil
	case CollisionOverwrite:
		return CollisionOverwrite, nil
	}
	return "", fmt.Errorf("unknown collision policy %q, expected rename, skip or overwrite", s)
}

// MergeConfiguration is the complete option set recognized by the engine.
type MergeConfiguration struct {
	Mode        Mode
	OnCollision CollisionPolicy
	Recursive   bool
	// IncludedExtensions limits which formats are picked up. Lowercase
	// extensions with leading dots; empty means the full supported set.
	IncludedExtensions []string
}

func DefaultMergeConfiguration() MergeConfiguration {
	return MergeConfiguration{
		Mode:        ModeCopy,
		OnCollision: CollisionRename,
		Recursive:   true,
	}
}

// Includes reports whether a file with the given extension is eligible.
func (c MergeConfiguration) Includes(ext string) bool {
	ext = strings.ToLower(ext)
	if !IsSupportedExtension(ext) {
		return false
	}
	if len(c.IncludedExtensions) == 0 {
		return true
	}
	for _, inc := range c.IncludedExtensions {
		if ext == inc {
			return true
		}
	}
	return false
}

func (c MergeConfiguration) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := ParseCollisionPolicy(string(c.OnCollision)); err != nil {
		return err
	}
	for _, ext := range c.IncludedExtensions {
		if !IsSupportedExtension(ext) {
			return fmt.Errorf("unsupported extension %q", ext)
		}
	}
	return nil
}
