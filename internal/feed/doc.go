// Package feed implements the event stream between the tracker and its
// consumers. The tracker publishes from its single goroutine; any number
// of dispatcher goroutines may consume. Delivery preserves publish order.
package feed
