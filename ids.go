package dispatchcore

// AgentID is a dense 64-bit identifier assigned at registration. 0 is
// reserved as invalid/system and is never assigned to a registered
// agent by Register; RegisterWithID allows callers to pin well-known
// system agents to specific non-zero ids.
type AgentID uint64

// InvalidAgentID is the reserved zero value.
const InvalidAgentID AgentID = 0

// TopicID and StreamID are the interned handles for topic and stream
// names respectively. They are disjoint id spaces even though both start
// counting from 1 with 0 denoting "none".
type TopicID uint64

// StreamID identifies an interned stream name; 0 means "no stream".
type StreamID uint64
