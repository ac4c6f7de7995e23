package weighbridge

import "strconv"

// grossSentinel flags a directly-extracted gross weight as OCR concatenation
// garbage. No real vehicle on these bridges weighs a thousand tonnes.
const grossSentinel = 1_000_000

// reconcileWeights enforces gross = tare + net. When exactly one of the three
// is missing and the other two are known, the missing one is computed (gross
// first, then net, then tare). An implausible gross is discarded before
// counting, so it can be recomputed from tare and net. With zero or two-plus
// values missing nothing is touched: the extractor output stands.
func reconcileWeights(cands map[Field]candidate) {
	gross, hasGross := weightValue(cands, FieldGross)
	tare, hasTare := weightValue(cands, FieldTare)
	net, hasNet := weightValue(cands, FieldNet)

	if hasGross && gross > grossSentinel {
		delete(cands, FieldGross)
		hasGross = false
	}

	missing := 0
	for _, ok := range []bool{hasGross, hasTare, hasNet} {
		if !ok {
			missing++
		}
	}
	if missing != 1 {
		return
	}

	switch {
	case !hasGross:
		setComputedWeight(cands, FieldGross, tare+net)
	case !hasNet:
		setComputedWeight(cands, FieldNet, gross-tare)
	case !hasTare:
		setComputedWeight(cands, FieldTare, gross-net)
	}
}

func weightValue(cands map[Field]candidate, f Field) (int, bool) {
	c, ok := cands[f]
	if !ok {
		return 0, false
	}
	n, ok := c.value.(int)
	return n, ok
}

func setComputedWeight(cands map[Field]candidate, f Field, n int) {
	cands[f] = candidate{
		field:      f,
		raw:        strconv.Itoa(n),
		value:      n,
		confidence: confidenceFallback,
	}
}
