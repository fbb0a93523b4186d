// Package recorder provides a concrete pre-publish hook standing in for
// the visualization/logging/recording collaborators the dispatch core
// treats as external: it converts every publish into a CloudEvent and
// forwards it to a Logger, without rendering or persisting anything
// itself.
package recorder

import (
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"

	dispatchcore "github.com/marketsim/dispatchcore"
)

// Event type constants, CloudEvents reverse-domain style.
const (
	EventTypePublish = "com.marketsim.dispatchcore.event.published"
)

// CloudEventRecorder is a PrePublishHook that emits one CloudEvent per
// publish to an attached Logger. Source is typically the bus's run id so
// events from concurrent runs in a batch study can be told apart.
type CloudEventRecorder struct {
	source string
	logger dispatchcore.Logger
}

// New returns a recorder that tags every emitted CloudEvent with source
// (e.g. "dispatchcore/run/<run-id>") and writes it via logger.
func New(source string, logger dispatchcore.Logger) *CloudEventRecorder {
	return &CloudEventRecorder{source: source, logger: logger}
}

// OnPrePublish implements dispatchcore.PrePublishHook.
func (r *CloudEventRecorder) OnPrePublish(ctx dispatchcore.PrePublishContext) {
	evt := cloudevents.NewEvent()
	evt.SetID(generateEventID())
	evt.SetSource(r.source)
	evt.SetType(EventTypePublish)
	evt.SetTime(time.Now())
	evt.SetSpecVersion(cloudevents.VersionV1)

	payload := map[string]any{
		"publisher":    uint64(ctx.Publisher),
		"topic":        ctx.Topic,
		"topic_id":     ctx.TopicID,
		"publish_time": ctx.PublishTime,
		"event_kind":   ctx.Event.Kind().String(),
	}
	_ = evt.SetData(cloudevents.ApplicationJSON, payload)
	evt.SetExtension("topicid", ctx.TopicID)
	evt.SetExtension("eventkind", ctx.Event.Kind().String())

	r.logger.Debug("publish recorded", "cloudevent", evt, "topic", ctx.Topic)
}

// generateEventID returns a time-ordered unique identifier for a
// CloudEvent, falling back to a random UUID if UUIDv7 generation fails.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
