// Package ndi implements the Nexus Dashboard Insights service operations on
// top of the nd transport: epochs, epoch delta analyses, pre-change
// validations and compliance results.
package ndi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cisco-open/nd-insights-client/pkg/nd"
)

const (
	// Prefix is the NDI telemetry API prefix on the controller
	Prefix = "/sedgeapi/v1/cisco-nir/api/api/telemetry/v2"

	configIGPath = "config/insightsGroup"
	eventsIGPath = "events/insightsGroup"
)

// Requester is the transport surface the service layer needs. *nd.Client
// implements it; tests substitute an httptest backed client or a mock.
//
//go:generate mockgen -destination=mock/requestermock.go -package=ndimock github.com/cisco-open/nd-insights-client/pkg/ndi Requester
type Requester interface {
	Request(ctx context.Context, method string, path string, query url.Values, body interface{}) (*nd.Response, error)
	Upload(ctx context.Context, path string, filePath string, data interface{}) (*nd.Response, error)
}

// Client runs Insights operations against one controller
type Client struct {
	nd Requester
}

// New creates an Insights service client on top of a transport
func New(requester Requester) *Client {
	return &Client{nd: requester}
}

// path joins elements under the NDI prefix
func path(elem ...string) string {
	p := Prefix
	for _, e := range elem {
		p += "/" + e
	}
	return p
}

// decodeData unmarshals the envelope payload into out
func decodeData(resp *nd.Response, out interface{}) error {
	if len(resp.Data()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data(), out); err != nil {
		return fmt.Errorf("could not decode controller payload: %w", err)
	}
	return nil
}

// Epochs returns the newest finished epochs of a fabric, newest first
func (c *Client) Epochs(ctx context.Context, insightsGroup string, fabric string, size int) ([]Epoch, error) {
	query := url.Values{}
	query.Set("$size", strconv.Itoa(size))
	query.Set("$status", "FINISHED")
	query.Set("$sort", "-collectionTimeMsecs")

	resp, err := c.nd.Request(ctx, "GET", path(eventsIGPath, insightsGroup, "fabric", fabric, "epochs"), query, nil)
	if err != nil {
		return nil, fmt.Errorf("could not list epochs for fabric %s: %w", fabric, err)
	}

	var epochs []Epoch
	if err := decodeData(resp, &epochs); err != nil {
		return nil, err
	}
	return epochs, nil
}

// LastEpoch returns the newest finished epoch of a fabric, the baseline every
// analysis submission is anchored on
func (c *Client) LastEpoch(ctx context.Context, insightsGroup string, fabric string) (*Epoch, error) {
	epochs, err := c.Epochs(ctx, insightsGroup, fabric, 1)
	if err != nil {
		return nil, err
	}
	if len(epochs) == 0 {
		return nil, EpochNotFoundErr{InsightsGroup: insightsGroup, Fabric: fabric}
	}
	return &epochs[0], nil
}

// EpochByTime returns the newest epoch collected at or before the given unix
// millisecond timestamp. It backs the *_epoch_time parameter form.
func (c *Client) EpochByTime(ctx context.Context, insightsGroup string, fabric string, msecs int64) (*Epoch, error) {
	epochs, err := c.Epochs(ctx, insightsGroup, fabric, 100)
	if err != nil {
		return nil, err
	}
	for i := range epochs {
		if epochs[i].CollectionTimeMsecs <= msecs {
			return &epochs[i], nil
		}
	}
	return nil, EpochNotFoundErr{InsightsGroup: insightsGroup, Fabric: fabric}
}
