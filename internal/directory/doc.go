// Package directory talks to the token directory: a small HTTP service that
// maps integer ids to base64 discovery tokens.
//
// Client is the caller side and implements domain.DirectoryClient. Server is a
// development implementation of the same protocol backed by a domain.TokenStore.
//
// HTTP API
//
//	POST {base}        {"token":"<b64>"}
//	    Store the token. Replies {"id":N,"token":"<b64>","success":true}.
//
//	GET {base}/{id}
//	    Return the entry for {id} in the same shape.
//
// Any status other than 200 is a failure. A 200 whose body is not the schema
// above, or whose success flag is false, is also a failure. Errors are
// classified with the sentinels in errors.go and match with errors.Is.
//
// Each call issues exactly one request. Nothing is retried or cached.
package directory
