package services

import (
	"context"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
	"temple-backend/internal/repositories"
)

// GroupService maintains the chart-of-accounts hierarchy: code-range
// validation, cycle prevention and delete guards.
type GroupService struct {
	GroupRepo  *repositories.GroupRepository
	LedgerRepo *repositories.LedgerRepository
}

func NewGroupService(groupRepo *repositories.GroupRepository, ledgerRepo *repositories.LedgerRepository) *GroupService {
	return &GroupService{GroupRepo: groupRepo, LedgerRepo: ledgerRepo}
}

func (s *GroupService) loadArena(ctx context.Context) (*groupArena, error) {
	groups, err := s.GroupRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return newGroupArena(groups), nil
}

// CreateGroup validates and inserts a new account group. The database
// uniqueness constraint backstops the arena check under concurrent writers.
func (s *GroupService) CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}
	codeNum, err := parseGroupCode(req.Code)
	if err != nil {
		return nil, err
	}

	arena, err := s.loadArena(ctx)
	if err != nil {
		return nil, err
	}

	if arena.codeTaken(req.Code, 0) {
		return nil, apperr.Conflict("group code %s already exists", req.Code)
	}

	if req.ParentID != 0 {
		parent, ok := arena.byID[req.ParentID]
		if !ok {
			return nil, apperr.NotFound("group", req.ParentID)
		}
		base, err := arena.baseGroup(parent)
		if err != nil {
			return nil, err
		}
		if err := checkCodeInRange(codeNum, base); err != nil {
			return nil, err
		}
	}

	g := &models.Group{
		Name:     req.Name,
		Code:     req.Code,
		ParentID: req.ParentID,
	}
	if err := s.GroupRepo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGroup renames, recodes or reparents a group. Fixed groups reject
// every mutation; reparenting onto a descendant is a cycle and rejected.
func (s *GroupService) UpdateGroup(ctx context.Context, id int, req *models.UpdateGroupRequest) (*models.Group, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}
	codeNum, err := parseGroupCode(req.Code)
	if err != nil {
		return nil, err
	}
	if req.ParentID == id {
		return nil, apperr.Conflict("group cannot be its own parent")
	}

	arena, err := s.loadArena(ctx)
	if err != nil {
		return nil, err
	}

	g, ok := arena.byID[id]
	if !ok {
		return nil, apperr.NotFound("group", id)
	}
	if g.Fixed {
		return nil, apperr.State("group %q is system-protected", g.Name)
	}
	if arena.codeTaken(req.Code, id) {
		return nil, apperr.Conflict("group code %s already exists", req.Code)
	}
	if arena.wouldCreateCycle(id, req.ParentID) {
		return nil, apperr.Conflict("group cannot be moved under its own descendant")
	}

	if req.ParentID != 0 {
		parent, ok := arena.byID[req.ParentID]
		if !ok {
			return nil, apperr.NotFound("group", req.ParentID)
		}
		base, err := arena.baseGroup(parent)
		if err != nil {
			return nil, err
		}
		// The would-be parent's chain may pass through the group being
		// moved; the cycle check above already rejected that, so the
		// base here is stable.
		if err := checkCodeInRange(codeNum, base); err != nil {
			return nil, err
		}
		if err := arena.checkSubtreeCodes(id, base); err != nil {
			return nil, err
		}
	} else {
		// Recoding a root moves its subtree into the new code's range.
		if err := arena.checkSubtreeCodes(id, &models.Group{Code: req.Code}); err != nil {
			return nil, err
		}
	}

	updated := &models.Group{
		ID:       id,
		Name:     req.Name,
		Code:     req.Code,
		ParentID: req.ParentID,
		Fixed:    g.Fixed,
	}
	if err := s.GroupRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListGroups returns all groups ordered by code.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.GroupRepo.GetAll(ctx)
}

// GetGroup retrieves one group.
func (s *GroupService) GetGroup(ctx context.Context, id int) (*models.Group, error) {
	return s.GroupRepo.Get(ctx, id)
}

// DeleteGroup removes a group. Fixed groups and groups with ledgers or
// child groups are protected; the repository re-checks dependents inside
// the delete transaction.
func (s *GroupService) DeleteGroup(ctx context.Context, id int) error {
	g, err := s.GroupRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if g.Fixed {
		return apperr.State("group %q is system-protected", g.Name)
	}
	return s.GroupRepo.Delete(ctx, id)
}

// GetTree returns the full hierarchy with ledgers attached to their groups.
func (s *GroupService) GetTree(ctx context.Context) ([]*models.GroupTreeNode, error) {
	arena, err := s.loadArena(ctx)
	if err != nil {
		return nil, err
	}
	ledgers, err := s.LedgerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byGroup := ledgersByGroup(ledgers)

	var build func(id, depth int) *models.GroupTreeNode
	build = func(id, depth int) *models.GroupTreeNode {
		if depth > maxTreeDepth {
			return nil
		}
		g := arena.byID[id]
		node := &models.GroupTreeNode{
			Group:    *g,
			Children: []*models.GroupTreeNode{},
			Ledgers:  byGroup[id],
		}
		for _, childID := range arena.children[id] {
			if child := build(childID, depth+1); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	}

	tree := make([]*models.GroupTreeNode, 0, len(arena.roots))
	for _, rootID := range arena.roots {
		if node := build(rootID, 0); node != nil {
			tree = append(tree, node)
		}
	}
	return tree, nil
}
