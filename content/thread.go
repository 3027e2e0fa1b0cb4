// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package content

import ssb "github.com/ssbc/go-ssb-model"

// Thread holds the tangle fields shared by posts, votes, blogs and gatherings.
// Branch is always encoded as a list, even though a single string decodes, too.
type Thread struct {
	Root   *ssb.MessageIdentifier  `json:"root,omitempty"`
	Branch []ssb.MessageIdentifier `json:"branch,omitempty"`
}

// IsRoot is true for content that does not point to a thread root.
func (t Thread) IsRoot() bool { return t.Root == nil }

func (t Thread) RootKey() ssb.MessageIdentifier {
	if t.Root == nil {
		return ""
	}
	return *t.Root
}

// Reply returns the tangle fields for a reply to root, with branch as the
// latest known messages in that thread.
func Reply(root ssb.MessageIdentifier, branch ...ssb.MessageIdentifier) Thread {
	if len(branch) == 0 {
		branch = []ssb.MessageIdentifier{root}
	}
	return Thread{Root: &root, Branch: branch}
}
