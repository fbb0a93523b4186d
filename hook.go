package dispatchcore

import "github.com/marketsim/dispatchcore/event"

// PrePublishContext carries everything a pre-publish hook needs to
// observe a publish before fanout. Hooks must treat it as read-only.
type PrePublishContext struct {
	Publisher   AgentID
	Topic       string
	TopicID     uint64
	Event       event.Event
	PublishTime int64
	Bus         Bus
}

// PrePublishHook is notified, synchronously and in registration order, of
// every publish before subscriber fanout. Hooks may inspect but must not
// mutate bus state; a hook that panics is caught and logged, never
// allowed to abort the publish.
type PrePublishHook interface {
	OnPrePublish(ctx PrePublishContext)
}

// hookChain is an ordered, duplicate-rejecting list of PrePublishHook.
// This generalizes the Subject/Observer registration pattern used
// elsewhere in this codebase's ancestry for CloudEvents-based
// notification, trading the async, error-returning Observer contract for
// a synchronous, non-aborting one that matches the pre-fanout trust
// boundary described in the error handling design.
type hookChain struct {
	hooks  []PrePublishHook
	logger Logger
}

func newHookChain(logger Logger) *hookChain {
	return &hookChain{logger: logger}
}

// register appends hook to the chain. A hook already present (by pointer
// identity) is rejected idempotently.
func (c *hookChain) register(hook PrePublishHook) {
	for _, h := range c.hooks {
		if h == hook {
			c.logger.Debug("pre-publish hook already registered, ignoring", "hook", hook)
			return
		}
	}
	c.hooks = append(c.hooks, hook)
}

// deregister removes hook from the chain if present.
func (c *hookChain) deregister(hook PrePublishHook) {
	for i, h := range c.hooks {
		if h == hook {
			c.hooks = append(c.hooks[:i], c.hooks[i+1:]...)
			return
		}
	}
}

// invoke runs every hook in registration order, recovering and logging
// any panic so one misbehaving hook never aborts the publish or blocks
// the remaining hooks.
func (c *hookChain) invoke(ctx PrePublishContext) {
	for _, h := range c.hooks {
		c.runOne(h, ctx)
	}
}

func (c *hookChain) runOne(h PrePublishHook, ctx PrePublishContext) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("pre-publish hook panicked", "hook", h, "recovered", r)
		}
	}()
	h.OnPrePublish(ctx)
}
