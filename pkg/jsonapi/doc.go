// Package jsonapi provides types, interfaces, and helpers for talking to
// servers that implement the JSON:API specification (https://jsonapi.org).
//
// # Overview
//
// The jsonapi package defines the Connection interface, its Config, the
// query parameter builder, the pluggable ErrorHandler with its default
// Resolver, and the error taxonomy. A concrete Connection is provided by
// the jsonapiclient package, which wires configuration, transport and
// authentication.
//
// Getting a connection
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/jsonapi-client/pkg/jsonapi"
//	  "github.com/fivetwenty-io/jsonapi-client/pkg/jsonapiclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  conn := jsonapiclient.Connect(&jsonapi.Config{BaseURL: "https://api.example.com"})
//
//	  // GET https://api.example.com/v1/authors/1?include=books
//	  doc, err := conn.Route(ctx, "authors/1", jsonapi.NewQueryParams().WithInclude("books"))
//	  if err != nil { log.Fatal(err) }
//	  _ = doc
//	}
//
// # Queries
//
// QueryParams carries filters and include paths. Entries with an empty value
// are dropped before a request is sent:
//
//	params := jsonapi.NewQueryParams().
//	  WithFilter("filter[name]", "Tolkien").
//	  WithInclude("books", "books.chapters")
//
// # Errors
//
// Route returns decoded values for statuses up to 300. Above that, the
// default Resolver returns a JSON:API error document as a normal value when
// the server sends application/vnd.api+json, and a GenericHTTPError carrying
// the raw body otherwise. Use AsDocument and Document.HasErrors to tell the
// two kinds of returned documents apart:
//
//	value, err := conn.Route(ctx, "authors/999", nil)
//	if err != nil { return err }
//	doc, err := jsonapi.AsDocument(value)
//	if err == nil && doc.HasErrors() { /* inspect doc.Errors */ }
//
// A different ErrorHandler can be passed per call with WithErrorHandler.
package jsonapi
