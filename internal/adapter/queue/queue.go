package queue

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Close() error
}

var _ MessageQueue = (*NATSQueue)(nil)
