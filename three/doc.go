// Package three holds the resource handles of version 3 of the Billplz API.
//
// Handles are obtained from the client rather than built directly:
//
//	res, err := client.Bill(billplz.V3)
//	bill := res.(*three.Bill)
//	resp, err := bill.Client().Send(ctx, http.MethodGet, bill.Path("8X0Iyzaw"), nil, nil)
package three
