package resthttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"
)

var (
	// ErrBadStatus non 2xx response
	ErrBadStatus = errors.New("resthttp: bad status")
	// ErrParse response body is not the expected json
	ErrParse = errors.New("resthttp: parse response")
)

var runOnce sync.Once
var restyClient *resty.Client

// Client resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// Post post body as json and parse the response into resp
func Post(request *resty.Request, url string, body interface{}, resp interface{}) error {
	log := logger.FromContext(request.Context()).WithField("url", url)

	r, err := request.SetBody(body).Post(url)
	if err != nil {
		return err
	}

	log.Debugln("resp.status:", r.Status())
	return ParseResponse(r, resp)
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	//fail
	if !r.IsSuccess() {
		return fmt.Errorf("%w: %s: %s", ErrBadStatus, r.Status(), truncate(r.Body(), 256))
	}

	//success
	if obj != nil {
		if err := json.Unmarshal(r.Body(), obj); err != nil {
			return fmt.Errorf("%w: %w", ErrParse, err)
		}
	}

	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}

	return string(b)
}
