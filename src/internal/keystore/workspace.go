// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package keystore

import (
	"os"
	"path/filepath"
)

// workspacePattern names the scoped directory holding JKS intermediates.
const workspacePattern = ".veribits-keystore-*"

// workspace is a uniquely named private directory owned by a single JKS
// conversion. It lives next to the output so the staged keystore can be
// renamed into place without crossing filesystems.
type workspace struct{ dir string }

// acquireWorkspace creates the workspace under parent. Callers must defer release.
func acquireWorkspace(parent string) (*workspace, error) {
	dir, err := os.MkdirTemp(parent, workspacePattern)
	if err != nil {
		return nil, err
	}
	return &workspace{dir: dir}, nil
}

func (w *workspace) path(name string) string { return filepath.Join(w.dir, name) }

// release removes the workspace and everything in it.
func (w *workspace) release() error { return os.RemoveAll(w.dir) }
