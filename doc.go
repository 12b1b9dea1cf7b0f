// Package billplz is a client for the Billplz payment gateway API.
//
// A Client turns a method, a path relative to the API endpoint, headers and
// data into an authenticated request and hands it to a transport:
//
//	client, err := billplz.Make(os.Getenv("BILLPLZ_API_KEY"))
//	client.UseSandbox()
//
//	resp, err := client.Send(ctx, http.MethodPost, "v3/bills",
//		map[string]string{"Content-Type": "application/json"},
//		payload.New("collection_id", "inbmmepb", "amount", 200))
//
// The API key travels as URI user-info, which the default transport sends
// as HTTP Basic auth. Data is encoded as JSON when the Content-Type header
// is exactly application/json and as form-urlencoded otherwise.
//
// Versioned resource handles are resolved by version and service name:
//
//	res, err := client.Bill(billplz.V3)
//
// The client does not retry, parse responses or manage connections. Those
// belong to the transport, see package transport.
package billplz
