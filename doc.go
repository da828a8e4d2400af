// Package ogmneo maps property maps to a Neo4j graph through composable,
// deferred operations.
//
// # Overview
//
// Statements are built from immutable query values (package query), wrapped
// in Operations that pair a statement with its parameters, its transaction
// kind and a result transform (package operation), and run by an Executer
// that opens a session, runs one transaction and closes the session again.
//
// A Connection bundles the executer with the node, relation, raw cypher and
// index services:
//
//	conn, err := ogmneo.Open(ctx, neo4jdriver.Config{
//		URI:      "neo4j://localhost:7687",
//		Username: "neo4j",
//		Password: "secret",
//	})
//	if err != nil {
//		return err
//	}
//	defer conn.Close(ctx)
//
//	ada, err := conn.Nodes().Create(ctx, map[string]any{"name": "Ada"}, "Person")
//
// # Batches
//
// Operations built with the *Operation functions of packages node and
// relation can run together in one transaction:
//
//	create, _ := node.CreateOperation(map[string]any{"name": "Bob"}, "Person")
//	count, _ := node.CountWithLabelOperation("Person")
//	results, err := conn.Executer().ExecuteWrite(ctx, []*operation.Operation{create, count})
//
// A batch is all-or-nothing: the first failing statement rolls the whole
// transaction back and its error is returned unchanged.
//
// # Error Handling
//
// Invalid input is rejected before anything reaches the database with an
// *ogmerr.Error carrying a code and a message. Database errors are returned
// exactly as the driver produced them:
//
//	if errors.Is(err, ogmerr.ErrInvalidArgument) {
//		// caller bug
//	}
//
// # Observability
//
// Every execution is traced with OpenTelemetry, counted and timed, and
// optionally recorded in a statement journal (package journal). Providers
// default to no-ops.
package ogmneo
