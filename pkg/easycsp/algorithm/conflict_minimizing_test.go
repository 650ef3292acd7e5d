package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordisvictor/easycsp-lib/pkg/easycsp"
	"github.com/cordisvictor/easycsp-lib/pkg/easycsp/algorithm"
)

func TestGlobalConflictMinimizingSolves(t *testing.T) {
	p := easycsp.Of[string, int]("cmGlobal", 1, easycsp.NewIntRangeDomain(1, 5)).
		Constrain(easycsp.NotEqualTo[string](3), 0).
		Build()
	a := algorithm.NewGlobalConflictMinimizing(p)

	a.Run()

	require.True(t, a.IsSuccessful())
	s, err := a.Solution()
	require.NoError(t, err)
	assert.True(t, s.IsComplete())
	assert.True(t, p.IsSatisfied(s))
	assert.NotEqual(t, 3, s.Value(0))
}

func TestGlobalConflictMinimizingSolvesBinaryChain(t *testing.T) {
	p := easycsp.Of[string, int]("cmChain", 3, easycsp.NewIntRangeDomain(1, 3)).
		ConstrainSequentially(easycsp.NotEqual[string, int]()).
		Build()
	a := algorithm.NewGlobalConflictMinimizing(p)

	a.Run()

	require.True(t, a.IsSuccessful())
	s, err := a.Solution()
	require.NoError(t, err)
	assert.True(t, p.IsSatisfied(s))
}

func TestGlobalConflictMinimizingFailsOnEmptyDomain(t *testing.T) {
	p := easycsp.OfDomains[string, int]("cmEmpty",
		easycsp.NewIntDomain(), easycsp.NewIntRangeDomain(1, 2)).
		Build()
	a := algorithm.NewGlobalConflictMinimizing(p)

	a.Run()

	assert.False(t, a.IsSuccessful())
	assert.False(t, a.IsRunning())
}

func TestLocalConflictMinimizingAcceptsPlateau(t *testing.T) {
	// both variables are pinned to singletons violating the constraint:
	// the conflict vector can never change, the first plateau is
	// accepted as a partial optimum
	p := easycsp.OfDomains[string, int]("cmLocal",
		easycsp.NewIntSingletonDomain(1), easycsp.NewIntSingletonDomain(1)).
		Constrain(easycsp.NotEqual[string, int](), 0, 1).
		Build()
	a := algorithm.NewLocalConflictMinimizing(p)

	a.Run()

	require.True(t, a.IsSuccessful())
	s, err := a.Solution()
	require.NoError(t, err)
	assert.True(t, s.IsComplete())
	assert.True(t, p.HasConflicts(s), "local optimum may keep conflicts")
}

func TestLocalConflictMinimizingSolvesWhenPossible(t *testing.T) {
	p := easycsp.Of[string, int]("cmLocalOk", 1, easycsp.NewIntRangeDomain(1, 4)).
		Constrain(easycsp.NotEqualTo[string](2), 0).
		Build()
	a := algorithm.NewLocalConflictMinimizing(p)

	a.Run()

	require.True(t, a.IsSuccessful())
	s, err := a.Solution()
	require.NoError(t, err)
	assert.NotEqual(t, 2, s.Value(0))
}
