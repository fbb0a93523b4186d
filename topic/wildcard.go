package topic

// WildcardIndex holds, per subscriber, the set of wildcard patterns they
// registered. Publish-time matching is a linear scan over this index: the
// spec's rationale is that wildcard patterns are numerous-in-subscriptions
// but small in total count, so a scan is simpler and sufficiently fast
// while keeping the exact trie pristine. order preserves first-subscription
// order across subscribers so Match's fanout is deterministic rather than
// dependent on Go's randomized map iteration.
type WildcardIndex struct {
	bySubscriber map[SubscriberID]map[string]struct{}
	order        []SubscriberID
}

// NewWildcardIndex returns an empty wildcard index.
func NewWildcardIndex() *WildcardIndex {
	return &WildcardIndex{bySubscriber: make(map[SubscriberID]map[string]struct{})}
}

// Add registers pattern for subscriber. Callers must have already validated
// the pattern with ValidatePattern.
func (w *WildcardIndex) Add(subscriber SubscriberID, pattern string) {
	set, ok := w.bySubscriber[subscriber]
	if !ok {
		set = make(map[string]struct{})
		w.bySubscriber[subscriber] = set
		w.order = append(w.order, subscriber)
	}
	set[pattern] = struct{}{}
}

// Remove unregisters pattern for subscriber, dropping the subscriber's
// entry entirely once its pattern set is empty.
func (w *WildcardIndex) Remove(subscriber SubscriberID, pattern string) {
	set, ok := w.bySubscriber[subscriber]
	if !ok {
		return
	}
	delete(set, pattern)
	if len(set) == 0 {
		w.dropFromOrder(subscriber)
		delete(w.bySubscriber, subscriber)
	}
}

// RemoveAll drops every pattern registered by subscriber, used during
// deregistration.
func (w *WildcardIndex) RemoveAll(subscriber SubscriberID) {
	if _, ok := w.bySubscriber[subscriber]; !ok {
		return
	}
	w.dropFromOrder(subscriber)
	delete(w.bySubscriber, subscriber)
}

func (w *WildcardIndex) dropFromOrder(subscriber SubscriberID) {
	for i, sub := range w.order {
		if sub == subscriber {
			w.order = append(w.order[:i], w.order[i+1:]...)
			return
		}
	}
}

// Match returns every subscriber with at least one wildcard pattern
// matching topicSegments, in first-subscription order.
func (w *WildcardIndex) Match(topicSegments []string) []SubscriberID {
	var out []SubscriberID
	for _, sub := range w.order {
		patterns := w.bySubscriber[sub]
		for pattern := range patterns {
			if matchSegments(Split(pattern), topicSegments) {
				out = append(out, sub)
				break
			}
		}
	}
	return out
}
