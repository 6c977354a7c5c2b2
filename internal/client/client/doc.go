// Package client talks to the CreatorHub server.
//
// AuthClient calls the credential endpoints over HTTP; GRPCClient calls the
// ledger and feed services over gRPC with the session token attached. Both
// translate transport failures into the sentinel errors in errors.go, and a
// rejected credential into *APIError carrying the server's message.
//
// OpenDatabase prepares the local sqlite file that holds the session
// snapshot.
package client
