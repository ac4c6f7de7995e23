package weighbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func weights(gross, tare, net any) map[Field]candidate {
	cands := make(map[Field]candidate)
	if gross != nil {
		cands[FieldGross] = candidate{field: FieldGross, value: gross}
	}
	if tare != nil {
		cands[FieldTare] = candidate{field: FieldTare, value: tare}
	}
	if net != nil {
		cands[FieldNet] = candidate{field: FieldNet, value: net}
	}
	return cands
}

func TestReconcileComputesMissingWeight(t *testing.T) {
	cands := weights(nil, 11500, 17400)
	reconcileWeights(cands)
	assert.Equal(t, 28900, cands[FieldGross].value)

	cands = weights(28900, 11500, nil)
	reconcileWeights(cands)
	assert.Equal(t, 17400, cands[FieldNet].value)

	cands = weights(28900, nil, 17400)
	reconcileWeights(cands)
	assert.Equal(t, 11500, cands[FieldTare].value)
}

func TestReconcileDiscardsImplausibleGross(t *testing.T) {
	cands := weights(1_200_000, 11500, 17400)

	reconcileWeights(cands)

	assert.Equal(t, 28900, cands[FieldGross].value)
	assert.Equal(t, confidenceFallback, cands[FieldGross].confidence)
}

func TestReconcileImplausibleGrossWithoutBothOthersStaysMissing(t *testing.T) {
	cands := weights(1_200_000, 11500, nil)

	reconcileWeights(cands)

	_, hasGross := cands[FieldGross]
	_, hasNet := cands[FieldNet]
	assert.False(t, hasGross)
	assert.False(t, hasNet)
}

func TestReconcileLeavesCompleteTripleAlone(t *testing.T) {
	// An inconsistent but complete triple is reported as extracted; the
	// reconciler never second-guesses three direct readings.
	cands := weights(29000, 11500, 17400)

	reconcileWeights(cands)

	assert.Equal(t, 29000, cands[FieldGross].value)
	assert.Equal(t, 11500, cands[FieldTare].value)
	assert.Equal(t, 17400, cands[FieldNet].value)
}

func TestReconcileLeavesTwoMissingAlone(t *testing.T) {
	cands := weights(28900, nil, nil)

	reconcileWeights(cands)

	assert.Equal(t, 28900, cands[FieldGross].value)
	_, hasTare := cands[FieldTare]
	_, hasNet := cands[FieldNet]
	assert.False(t, hasTare)
	assert.False(t, hasNet)
}
