package fs

// IsHidden reports dotfiles. "." and ".." are never listed at all.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}
