package constants

// Broker subjects are prefixed with the tenant: {SubjectPrefix}.{tenant}.{event type}
const SubjectPrefix = "shuttlefleet"

// Broker backends selectable through EVENTS_BROKER
const (
	BrokerNATS = "nats"
	BrokerNSQ  = "nsq"
	BrokerAMQP = "amqp"
	BrokerNone = "none"
)

// Entity store backends selectable through STORE_BACKEND
const (
	StoreMemory   = "memory"
	StoreRemote   = "remote"
	StorePostgres = "postgres"
)

// Assignment policies selectable through SIM_ASSIGNMENT_POLICY
const (
	PolicyRandom  = "random"
	PolicyNearest = "nearest"
)

// WebSocket stream message types
const (
	StreamEventState = "simulation_state"
	StreamEventError = "error"
)
