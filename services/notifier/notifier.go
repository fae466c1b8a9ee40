package notifier

// Notifier delivers one composed payload to its destination. Delivery
// failures are reported to the caller but never block the pipeline.
type Notifier interface {
	// Send delivers a single payload
	Send(payload string) error
}
