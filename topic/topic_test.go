package topic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marketsim/dispatchcore/topic"
)

func TestValidatePatternRejectsMidStreamTrailingWildcard(t *testing.T) {
	valid, _ := topic.ValidatePattern("a.#.b")
	assert.False(t, valid)
}

func TestValidatePatternAcceptsTrailingWildcardAtEnd(t *testing.T) {
	valid, _ := topic.ValidatePattern("x.#")
	assert.True(t, valid)
}

func TestValidatePatternFlagsEmptySegments(t *testing.T) {
	_, hasEmpty := topic.ValidatePattern("a..b")
	assert.True(t, hasEmpty)
}

func TestMatchWildcardSingleSegment(t *testing.T) {
	assert.True(t, topic.MatchWildcard("x.*.y", topic.Split("x.anything.y")))
	assert.False(t, topic.MatchWildcard("x.*.y", topic.Split("x.a.b.y")))
}

func TestMatchWildcardTrailingIncludesZeroSegments(t *testing.T) {
	assert.True(t, topic.MatchWildcard("x.#", topic.Split("x")))
	assert.True(t, topic.MatchWildcard("x.#", topic.Split("x.y.z")))
	assert.False(t, topic.MatchWildcard("x.#", topic.Split("z.y")))
}

func TestTrieExactRoutingIsLocal(t *testing.T) {
	tr := topic.NewTrie()
	tr.Subscribe(topic.Split("a.b.c"), 1, 10)

	assert.ElementsMatch(t, []topic.SubscriberID{10}, tr.ExactSubscribers(topic.Split("a.b.c")))
	assert.Empty(t, tr.ExactSubscribers(topic.Split("a.b")))
	assert.Empty(t, tr.ExactSubscribers(topic.Split("a.b.c.d")))
	assert.Empty(t, tr.ExactSubscribers(topic.Split("a.b.x")))
}

func TestTriePruneCompleteness(t *testing.T) {
	tr := topic.NewTrie()
	tr.Subscribe(topic.Split("a.b.c"), 1, 10)
	tr.Unsubscribe(topic.Split("a.b.c"), 10)

	assert.Empty(t, tr.ExactSubscribers(topic.Split("a.b.c")))
	// re-subscribing must recreate the path cleanly, proving no stray nodes remain.
	tr.Subscribe(topic.Split("a.b.c"), 1, 11)
	assert.ElementsMatch(t, []topic.SubscriberID{11}, tr.ExactSubscribers(topic.Split("a.b.c")))
}

func TestTrieDoesNotPruneWhileSiblingsRemain(t *testing.T) {
	tr := topic.NewTrie()
	tr.Subscribe(topic.Split("a.b.c"), 1, 10)
	tr.Subscribe(topic.Split("a.b.d"), 2, 20)
	tr.Unsubscribe(topic.Split("a.b.c"), 10)

	assert.Empty(t, tr.ExactSubscribers(topic.Split("a.b.c")))
	assert.ElementsMatch(t, []topic.SubscriberID{20}, tr.ExactSubscribers(topic.Split("a.b.d")))
}

func TestWildcardIndexMatchAndRemove(t *testing.T) {
	w := topic.NewWildcardIndex()
	w.Add(1, "x.#")
	assert.ElementsMatch(t, []topic.SubscriberID{1}, w.Match(topic.Split("x.y")))

	w.Remove(1, "x.#")
	assert.Empty(t, w.Match(topic.Split("x.y")))
}

func TestWildcardIndexRemoveAll(t *testing.T) {
	w := topic.NewWildcardIndex()
	w.Add(1, "x.#")
	w.Add(1, "x.*")
	w.RemoveAll(1)
	assert.Empty(t, w.Match(topic.Split("x.y")))
}

// TestTrieExactSubscribersOrderIsSubscriptionOrder guards against
// regressing to an unordered map-backed subscriber set: fanout must not
// depend on Go's randomized map iteration order.
func TestTrieExactSubscribersOrderIsSubscriptionOrder(t *testing.T) {
	tr := topic.NewTrie()
	tr.Subscribe(topic.Split("a.b"), 1, 100)
	tr.Subscribe(topic.Split("a.b"), 1, 200)
	tr.Subscribe(topic.Split("a.b"), 1, 300)

	for i := 0; i < 20; i++ {
		got := tr.ExactSubscribers(topic.Split("a.b"))
		assert.Equal(t, []topic.SubscriberID{100, 200, 300}, got)
	}
}

// TestWildcardIndexMatchOrderIsSubscriptionOrder guards the same
// invariant for the wildcard index.
func TestWildcardIndexMatchOrderIsSubscriptionOrder(t *testing.T) {
	w := topic.NewWildcardIndex()
	w.Add(100, "a.#")
	w.Add(200, "a.#")
	w.Add(300, "a.#")

	for i := 0; i < 20; i++ {
		got := w.Match(topic.Split("a.b.c"))
		assert.Equal(t, []topic.SubscriberID{100, 200, 300}, got)
	}
}
