// Package rpc declares the wire contract between the storefront client and
// the backend: the beautystore.v1.Storefront gRPC service, its request and
// response messages, and the JSON codec they travel with.
//
// Messages are plain Go structs. Every Storefront call is issued with
// content-subtype "json" (see CallOptions), so both sides pick JSONCodec from
// the grpc encoding registry. Liveness uses the standard grpc health service
// and the default proto codec.
package rpc
