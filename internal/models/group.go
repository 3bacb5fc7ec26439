package models

// Group is a node in the chart-of-accounts hierarchy. Leaf ledgers hang off
// groups; groups nest under a root group whose code defines the valid
// 1000-wide code range for the whole subtree.
type Group struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`      // 4-digit numeric string, 1000-9999
	ParentID int    `json:"parent_id"` // 0 = root group
	Fixed    bool   `json:"fixed"`     // system group: cannot be renamed, moved or deleted
}

// IsRoot reports whether the group sits at the top of the tree.
func (g *Group) IsRoot() bool {
	return g.ParentID == 0
}

// CreateGroupRequest is the payload for creating an account group.
type CreateGroupRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID int    `json:"parent_id"`
}

// UpdateGroupRequest is the payload for renaming/recoding/reparenting a group.
type UpdateGroupRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID int    `json:"parent_id"`
}

// GroupTreeNode is a group with its resolved children, returned by the
// group listing endpoint.
type GroupTreeNode struct {
	Group
	Children []*GroupTreeNode `json:"children"`
	Ledgers  []Ledger         `json:"ledgers,omitempty"`
}
