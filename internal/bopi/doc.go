// Package bopi provides an HTTP client for the local API of a BoPi
// pH/sensor monitoring box.
//
// The package has two layers: a transport that performs a single HTTP
// exchange against the box and decodes the response into a generic
// payload, and a domain mapper that turns the sensor endpoint's payload
// into a validated SensorsState.
//
// # Usage Example
//
//	client, err := bopi.NewClient("192.168.1.26")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	state, err := client.GetSensorsState(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("pH:", state.PhValue)
//
// # Session Ownership
//
// By default the client creates and owns its HTTP session; Close releases
// it. A session supplied via WithHTTPClient is borrowed: the client never
// tears it down, the caller stays responsible for its lifecycle.
//
// # Error Handling
//
// Every failure is a *ClientError carrying an ErrorType: configuration
// errors at construction, connection errors for transport failures and
// timeouts, API errors for non-2xx statuses and undecodable JSON,
// validation errors for out-of-domain sensor values and missing-field
// errors for absent payload fields. The Is* predicates inspect wrapped
// error chains. The client never retries; a failed call reports exactly
// one error to the caller.
//
// # Disconnected Sensors
//
// The firmware reports -127 for an unplugged probe. NormalizeSensor maps
// that sentinel to an absent value, so SensorsState exposes optional
// temperatures instead of impossible readings.
package bopi
