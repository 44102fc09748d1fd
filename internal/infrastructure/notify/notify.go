// Package notify provides the progress notification sink used by the
// enrichment and sync pipelines. Delivery is fire-and-forget: a sink may
// drop events, and no pipeline decision ever depends on a delivery result.
package notify

// Namespaces used by the pipelines.
const (
	NamespaceEnrichment = "subscription_enrichment"
	NamespaceDiscovery  = "video_discovery"
	NamespaceSync       = "subscription_sync"
)

// Sink receives progress notifications. Implementations must never block
// the caller for long and must swallow their own delivery errors.
type Sink interface {
	Emit(namespace, eventType string, payload map[string]string)
}
