package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
)

// folderWithSuffix returns the first folder whose name ends with suffix,
// case-insensitively. Vault folders carry numeric prefixes ("03_Daily"),
// so lookups match on the stable suffix.
func folderWithSuffix(entries []driven.Entry, suffix string) (driven.Entry, bool) {
	suffix = strings.ToLower(suffix)
	for _, e := range entries {
		if e.IsFolder && strings.HasSuffix(strings.ToLower(e.Name), suffix) {
			return e, true
		}
	}
	return driven.Entry{}, false
}

// fileNamed returns the first file whose name equals name,
// case-insensitively.
func fileNamed(entries []driven.Entry, name string) (driven.Entry, bool) {
	name = strings.ToLower(name)
	for _, e := range entries {
		if !e.IsFolder && strings.ToLower(e.Name) == name {
			return e, true
		}
	}
	return driven.Entry{}, false
}

// markdownFiles filters entries down to .md files.
func markdownFiles(entries []driven.Entry) []driven.Entry {
	var out []driven.Entry
	for _, e := range entries {
		if !e.IsFolder && strings.HasSuffix(strings.ToLower(e.Name), ".md") {
			out = append(out, e)
		}
	}
	return out
}

// findVaultFolder lists parent and returns the folder ending with name.
// Returns domain.ErrNotFound when no folder matches.
func findVaultFolder(ctx context.Context, vault driven.VaultStore, parent, name string) (driven.Entry, error) {
	entries, err := vault.ListFolder(ctx, parent)
	if err != nil {
		return driven.Entry{}, fmt.Errorf("listing %s: %w", parent, err)
	}
	folder, ok := folderWithSuffix(entries, name)
	if !ok {
		return driven.Entry{}, fmt.Errorf("%w: no folder ending %q under %s",
			domain.ErrNotFound, name, parent)
	}
	return folder, nil
}
