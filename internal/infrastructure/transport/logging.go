package transport

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// maxLoggedBody caps how much of a body lands in the log.
const maxLoggedBody = 4 << 10

// logTransport captures request and response bodies for diagnostics. It only
// touches the bodies when debug logging is enabled, and always restores them
// so request semantics are unchanged.
type logTransport struct {
	next http.RoundTripper
	log  zerolog.Logger
}

func (l *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if l.log.GetLevel() > zerolog.DebugLevel {
		return l.next.RoundTrip(req)
	}

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	start := time.Now()
	resp, err := l.next.RoundTrip(req)
	elapsed := time.Since(start)

	ev := l.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Dur("elapsed", elapsed).
		Bytes("request_body", truncate(reqBody))

	if err != nil {
		ev.Err(err).Msg("http request failed")
		return resp, err
	}

	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(respBody))
	}

	ev.Int("status", resp.StatusCode).
		Bytes("response_body", truncate(respBody)).
		Msg("http request")
	return resp, nil
}

func truncate(b []byte) []byte {
	if len(b) > maxLoggedBody {
		return b[:maxLoggedBody]
	}
	return b
}
