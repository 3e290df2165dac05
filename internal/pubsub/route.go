package pubsub

// PopDestination returns the head of msg's destination queue and a new
// message carrying the remainder, for a handler that replies on the
// popped topic with what's left of the route (source-routed
// request/response, spec.md §4.5). Returns ok=false if the queue is
// empty, meaning there is nowhere left to reply.
func PopDestination[T any](msg Message[T]) (topic string, rest Message[T], ok bool) {
	if len(msg.Destinations) == 0 {
		return "", msg, false
	}
	topic = msg.Destinations[0]
	rest = Message[T]{
		Data:         msg.Data,
		Destinations: append([]string{}, msg.Destinations[1:]...),
		Debug:        msg.Debug,
	}
	return topic, rest, true
}
