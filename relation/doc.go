// Package relation creates, updates, finds and deletes relationships
// between nodes.
//
// As in package node, each call has an *Operation builder and a Service
// method executing it. Relationships are exchanged as property maps carrying
// "id", "type", "start" and "end" next to their own properties. Populated
// lookups put the endpoint nodes under "start" and "end" instead of ids.
package relation
