// Package main runs the in-memory token directory used by nearby during
// development and tests.
//
// HTTP API
//
//	POST /
//	    Store {"token":"<base64>"} and answer {"id":N,"token":"...","success":true}.
//
//	GET /{id}
//	    Return the entry published under {id}, or 404 with {"success":false}.
//
//	GET /metrics
//	    Prometheus metrics.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Ids are assigned sequentially from 1.
//   - An access log line records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is 127.0.0.1:8080.
package main
