// Package payload turns request data into the two body encodings the Billplz
// API accepts: application/x-www-form-urlencoded and JSON.
//
// Params keeps keys in insertion order so that
//
//	payload.Form(payload.New("amount", 100, "ref", "x"))
//
// is always "amount=100&ref=x". Plain Go maps have no order, so their keys
// are emitted sorted. Nested values flatten the way PHP's http_build_query
// does: a[b]=c for nested keys, a[0]=x for lists, with the brackets
// percent-encoded.
package payload
