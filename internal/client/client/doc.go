// Package client contains the storefront's connection to the backend.
//
// # Overview
//
// The package provides:
//  1. The transport-agnostic Client contract: SignIn, user lookups and
//     updates, product reads, favorite insert/delete and the joined favorites
//     list, Ping, and access-token installation.
//  2. GRPCClient, the gRPC implementation. It injects the access token via a
//     unary interceptor, applies a per-call timeout, retries idempotent reads
//     with bounded exponential backoff when the server is unavailable, and maps
//     gRPC status codes to sentinel errors. Mutations are never retried.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file that backs the secure credential store.
//
// # Error Handling
//
// Sentinels are matched with errors.Is: ErrUnauthorized (rejected
// credentials or token), ErrRemoteCall (any other backend failure),
// ErrUnavailable (transport failures) and ErrForbidden (a refused operation).
// The last two are also ErrRemoteCall. NotFound, AlreadyExists and InvalidArgument
// statuses are mapped onto common.ErrorNotFound, common.ErrorAlreadyExists and
// common.ErrValidation.
//
// The client is constructed by the application root, shared by the services
// that need it and closed on shutdown. It is safe for concurrent use.
package client
