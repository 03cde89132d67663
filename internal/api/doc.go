// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It exposes batch submission, progress polling,
// and workbook download, translating HTTP concerns to pipeline operations.
package api
