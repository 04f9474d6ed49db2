// Package httpclient provides the HTTP client used by the remote stage
// providers: bearer authentication, a per-request timeout, JSON and
// multipart bodies, optional retry, and classified errors.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.openai.com/v1",
//	    Timeout: 2 * time.Minute,
//	    Auth:    httpclient.BearerAuth(apiKey),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/audio/transcriptions",
//	    Body:   &httpclient.MultipartBody{...},
//	})
//
// Non-2xx responses are returned as *Error alongside the Response so callers
// can still inspect the body.
package httpclient
