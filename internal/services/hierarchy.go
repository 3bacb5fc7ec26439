package services

import (
	"strconv"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

// maxTreeDepth bounds every parent-chain walk and report recursion. The
// write path prevents cycles, but a corrupted persisted tree must still not
// hang a request.
const maxTreeDepth = 32

// groupArena is a full in-memory snapshot of the group table, loaded once
// per operation. All hierarchy checks and report traversals run against it
// instead of issuing a query per step.
type groupArena struct {
	byID     map[int]*models.Group
	children map[int][]int
	roots    []int
}

func newGroupArena(groups []models.Group) *groupArena {
	a := &groupArena{
		byID:     make(map[int]*models.Group, len(groups)),
		children: make(map[int][]int),
	}
	for i := range groups {
		g := &groups[i]
		a.byID[g.ID] = g
	}
	// Children resolve in code order because the input is sorted by code.
	for i := range groups {
		g := &groups[i]
		if g.ParentID == 0 {
			a.roots = append(a.roots, g.ID)
		} else {
			a.children[g.ParentID] = append(a.children[g.ParentID], g.ID)
		}
	}
	return a
}

// baseGroup walks the parent chain to the root group whose code anchors the
// subtree's 1000-wide range. The depth guard terminates even on a corrupted
// tree.
func (a *groupArena) baseGroup(g *models.Group) (*models.Group, error) {
	current := g
	for depth := 0; depth < maxTreeDepth; depth++ {
		if current.ParentID == 0 {
			return current, nil
		}
		parent, ok := a.byID[current.ParentID]
		if !ok {
			return nil, apperr.NotFound("group", current.ParentID)
		}
		current = parent
	}
	return nil, apperr.State("group tree deeper than %d levels, possible cycle", maxTreeDepth)
}

// isDescendantOf reports whether group id sits somewhere below ancestorID.
func (a *groupArena) isDescendantOf(id, ancestorID int) bool {
	current, ok := a.byID[id]
	if !ok {
		return false
	}
	for depth := 0; depth < maxTreeDepth; depth++ {
		if current.ParentID == 0 {
			return false
		}
		if current.ParentID == ancestorID {
			return true
		}
		parent, ok := a.byID[current.ParentID]
		if !ok {
			return false
		}
		current = parent
	}
	return false
}

// wouldCreateCycle reports whether reparenting group id under newParentID
// would make the group an ancestor of its own parent.
func (a *groupArena) wouldCreateCycle(id, newParentID int) bool {
	if newParentID == 0 {
		return false
	}
	if newParentID == id {
		return true
	}
	return a.isDescendantOf(newParentID, id)
}

// descendants collects every group ID below id, depth-first. The depth guard
// mirrors the other walks.
func (a *groupArena) descendants(id int) []int {
	var out []int
	var walk func(id, depth int)
	walk = func(id, depth int) {
		if depth > maxTreeDepth {
			return
		}
		for _, childID := range a.children[id] {
			out = append(out, childID)
			walk(childID, depth+1)
		}
	}
	walk(id, 0)
	return out
}

// checkSubtreeCodes re-validates every descendant of id against base. Moving
// or recoding a group drags its whole subtree into the new base range; a
// descendant whose code falls outside it blocks the change.
func (a *groupArena) checkSubtreeCodes(id int, base *models.Group) error {
	for _, descID := range a.descendants(id) {
		desc := a.byID[descID]
		descCode, err := parseGroupCode(desc.Code)
		if err != nil {
			return err
		}
		if err := checkCodeInRange(descCode, base); err != nil {
			return err
		}
	}
	return nil
}

// codeTaken reports whether another group already uses the code.
func (a *groupArena) codeTaken(code string, excludeID int) bool {
	for _, g := range a.byID {
		if g.Code == code && g.ID != excludeID {
			return true
		}
	}
	return false
}

// parseGroupCode validates the 4-digit numeric code format and returns its
// numeric value.
func parseGroupCode(code string) (int, error) {
	if len(code) != 4 {
		return 0, apperr.Validation("code", "must be exactly 4 digits, got %q", code)
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, apperr.Validation("code", "must be numeric, got %q", code)
	}
	if n < 1000 || n > 9999 {
		return 0, apperr.Validation("code", "must be between 1000 and 9999, got %d", n)
	}
	return n, nil
}

// checkCodeInRange enforces the base-range invariant: a non-root group's
// code lies in (base, base+999].
func checkCodeInRange(code int, base *models.Group) error {
	baseCode, err := parseGroupCode(base.Code)
	if err != nil {
		return err
	}
	if code == baseCode {
		return apperr.Validation("code", "code %04d equals base group code", code)
	}
	if code < baseCode || code > baseCode+999 {
		return apperr.Conflict("code %04d outside base group %s range %d-%d",
			code, base.Code, baseCode, baseCode+999)
	}
	return nil
}
