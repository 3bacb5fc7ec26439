package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temple-backend/internal/apperr"
	"temple-backend/internal/models"
)

func testGroups() []models.Group {
	return []models.Group{
		{ID: 1, Name: "Assets", Code: "1000", ParentID: 0, Fixed: true},
		{ID: 2, Name: "Current Assets", Code: "1100", ParentID: 1},
		{ID: 3, Name: "Cash & Bank", Code: "1110", ParentID: 2},
		{ID: 4, Name: "Liabilities", Code: "2000", ParentID: 0, Fixed: true},
		{ID: 5, Name: "Sundry Creditors", Code: "2100", ParentID: 4},
	}
}

func TestParseGroupCode(t *testing.T) {
	tests := []struct {
		code    string
		want    int
		wantErr bool
	}{
		{"1000", 1000, false},
		{"9999", 9999, false},
		{"1100", 1100, false},
		{"999", 0, true},
		{"10000", 0, true},
		{"0999", 0, true},
		{"12ab", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseGroupCode(tt.code)
		if tt.wantErr {
			assert.Error(t, err, "parseGroupCode(%q)", tt.code)
			var validation *apperr.ValidationError
			assert.True(t, errors.As(err, &validation), "parseGroupCode(%q) error type", tt.code)
		} else {
			require.NoError(t, err, "parseGroupCode(%q)", tt.code)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestBaseGroup(t *testing.T) {
	arena := newGroupArena(testGroups())

	base, err := arena.baseGroup(arena.byID[3])
	require.NoError(t, err)
	assert.Equal(t, "1000", base.Code)

	base, err = arena.baseGroup(arena.byID[5])
	require.NoError(t, err)
	assert.Equal(t, "2000", base.Code)

	// A root is its own base.
	base, err = arena.baseGroup(arena.byID[1])
	require.NoError(t, err)
	assert.Equal(t, 1, base.ID)
}

func TestBaseGroupMissingParent(t *testing.T) {
	arena := newGroupArena([]models.Group{
		{ID: 7, Name: "Orphan", Code: "1500", ParentID: 99},
	})

	_, err := arena.baseGroup(arena.byID[7])
	var notFound *apperr.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, 99, notFound.ID)
}

func TestBaseGroupDepthGuard(t *testing.T) {
	// Two groups pointing at each other cannot exist via the write path,
	// but the walk must still terminate.
	arena := newGroupArena([]models.Group{
		{ID: 1, Name: "A", Code: "1100", ParentID: 2},
		{ID: 2, Name: "B", Code: "1200", ParentID: 1},
	})

	_, err := arena.baseGroup(arena.byID[1])
	var state *apperr.StateError
	assert.True(t, errors.As(err, &state))
}

func TestWouldCreateCycle(t *testing.T) {
	arena := newGroupArena(testGroups())

	assert.True(t, arena.wouldCreateCycle(2, 2), "self-parent")
	assert.True(t, arena.wouldCreateCycle(2, 3), "own child as parent")
	assert.True(t, arena.wouldCreateCycle(1, 3), "own grandchild as parent")
	assert.False(t, arena.wouldCreateCycle(3, 1), "moving up the chain")
	assert.False(t, arena.wouldCreateCycle(5, 2), "move across subtrees")
	assert.False(t, arena.wouldCreateCycle(2, 0), "promote to root")
}

func TestCodeTaken(t *testing.T) {
	arena := newGroupArena(testGroups())

	assert.True(t, arena.codeTaken("1100", 0))
	assert.False(t, arena.codeTaken("1100", 2), "own code is not a conflict")
	assert.False(t, arena.codeTaken("1300", 0))
}

func TestDescendants(t *testing.T) {
	arena := newGroupArena(testGroups())

	assert.ElementsMatch(t, []int{2, 3}, arena.descendants(1))
	assert.ElementsMatch(t, []int{3}, arena.descendants(2))
	assert.Empty(t, arena.descendants(3), "leaf has no descendants")
}

func TestCheckSubtreeCodes(t *testing.T) {
	arena := newGroupArena(testGroups())

	// The Assets subtree (1100, 1110) fits under base 1000 but not under
	// base 2000: reparenting must drag every descendant into the new range.
	assert.NoError(t, arena.checkSubtreeCodes(1, &models.Group{Code: "1000"}))

	var conflict *apperr.ConflictError
	err := arena.checkSubtreeCodes(1, &models.Group{Code: "2000"})
	require.True(t, errors.As(err, &conflict), "descendants outside the target base range")

	// Recoding a root narrows the range its subtree must fit; 1110 falls
	// outside (1500, 2499] so the recode is rejected.
	err = arena.checkSubtreeCodes(1, &models.Group{Code: "1500"})
	assert.True(t, errors.As(err, &conflict))

	// A leaf carries no subtree, so any base passes.
	assert.NoError(t, arena.checkSubtreeCodes(3, &models.Group{Code: "9000"}))
}

func TestCheckCodeInRange(t *testing.T) {
	base := &models.Group{ID: 1, Name: "Assets", Code: "1000"}

	assert.NoError(t, checkCodeInRange(1001, base))
	assert.NoError(t, checkCodeInRange(1999, base))

	var validation *apperr.ValidationError
	err := checkCodeInRange(1000, base)
	assert.True(t, errors.As(err, &validation), "code equal to base")

	var conflict *apperr.ConflictError
	err = checkCodeInRange(2100, base)
	assert.True(t, errors.As(err, &conflict), "code outside range")

	err = checkCodeInRange(2000, base)
	assert.True(t, errors.As(err, &conflict), "next base boundary")
}
