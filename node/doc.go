// Package node creates, updates, finds and deletes graph nodes.
//
// Every call exists in two forms. The *Operation functions build an
// operation.Operation without touching the database, so it can be batched
// with others or run on a caller-owned transaction. The Service methods
// build the same operation and execute it through an operation.Executer.
//
// Nodes are exchanged as property maps. The node id lives under the "id" key
// and is never written as a property.
package node
