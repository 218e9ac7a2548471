package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parking-vacancy-backend/internal/store"
)

func rec(name, vacant string) store.Record {
	return store.Record{
		GarageName:   name,
		VacantStalls: vacant,
		ObservedAt:   time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}
}

func TestMerge_HigherPrecedenceWins(t *testing.T) {
	lower := []store.Record{rec("X", "5"), rec("Y", "12")}
	higher := []store.Record{rec("X", "9")}

	snap := Merge([][]store.Record{lower, higher})

	assert.Len(t, snap, 2)
	assert.Equal(t, "9", snap["X"].VacantStalls)
	assert.Equal(t, "12", snap["Y"].VacantStalls)
}

func TestMerge_Idempotent(t *testing.T) {
	inputs := [][]store.Record{
		{rec("A", "1"), rec("B", "Full")},
		{rec("B", "3"), rec("C", "77")},
	}

	first := Merge(inputs)
	second := Merge(inputs)

	assert.Equal(t, first, second)
}

func TestMerge_PartialFailure(t *testing.T) {
	// A failed source contributes an empty list; the other source's records
	// must survive untouched.
	ok := []store.Record{rec("A", "10"), rec("B", "20"), rec("C", "30")}

	snap := Merge([][]store.Record{nil, ok})

	assert.Len(t, snap, 3)
	assert.Equal(t, "10", snap["A"].VacantStalls)

	snap = Merge([][]store.Record{ok, nil})
	assert.Len(t, snap, 3)
}

func TestMerge_AllEmpty(t *testing.T) {
	snap := Merge([][]store.Record{nil, {}})
	assert.Empty(t, snap)
}

func TestMerge_AbsentGaragesStayAbsent(t *testing.T) {
	snap := Merge([][]store.Record{{rec("A", "1")}})
	_, ok := snap["B"]
	assert.False(t, ok, "merge must not invent entries for unobserved garages")
}
