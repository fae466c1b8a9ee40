package publisher

// Publisher archives run output to a stream for downstream consumers.
type Publisher interface {
	// Publish appends a message to the archive stream under a field key
	Publish(key string, message []byte) error

	// TrimStream trims the archive stream to the configured maximum length
	TrimStream() error

	// Close closes the publisher connection
	Close() error
}
