package engine

// queueMin is the minimum queue length maintained after every mutation that
// could shrink it, so "next piece" lookups never fail.
const queueMin = 7

// topUpQueue refills the upcoming-piece queue in shuffled full-set batches:
// each refill is a random permutation of all seven kinds, so every kind
// appears exactly once per seven draws.
func (e *Engine) topUpQueue() {
	for len(e.queue) < queueMin {
		bag := Kinds()
		e.rng.Shuffle(len(bag), func(i, j int) {
			bag[i], bag[j] = bag[j], bag[i]
		})
		e.queue = append(e.queue, bag[:]...)
	}
}

// nextKind pops the head of the queue, then restores the stocked minimum so
// the queue never sits below queueMin between mutations.
func (e *Engine) nextKind() Kind {
	e.topUpQueue()
	k := e.queue[0]
	e.queue = e.queue[1:]
	e.topUpQueue()
	return k
}
