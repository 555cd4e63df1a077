// Package server implements the HTTP front end of the math solver.
//
// # Routes
//
//   - GET /: the capture, crop and solve page
//   - GET /static/{file}: embedded script and stylesheet
//   - POST /solve: multipart upload with an "image" field
//   - GET /healthz: liveness plus OCR engine status
//
// # Solve responses
//
// A solved upload returns 200 with the recognized text, the value and a
// human-readable step line:
//
//	{"text":"2+2","result":4,"steps":"Resolved: 2+2 = 4"}
//
// Every failure, whether the upload is missing, the image cannot be decoded,
// OCR finds nothing or the expression does not evaluate, returns 400 with a
// single fixed message:
//
//	{"error":"Invalid or unrecognized expression"}
//
// The underlying cause is logged, never returned to the client.
//
// # Usage
//
//	srv, err := server.New(server.Config{Addr: ":3000"}, solver)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
