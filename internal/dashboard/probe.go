package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"InfraDash/internal/dashboard/fetch"
	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/pkg/metrics"
)

// Outcome is the final state a probe leaves its response area in
type Outcome struct {
	Status  Status `json:"status"`
	Content string `json:"content"`
	// Err is a *fetch.NetworkError or *fetch.ApplicationError, nil on success
	Err error `json:"-"`
}

// Kind classifies the outcome as "success", "network" or "application"
func (o *Outcome) Kind() string {
	switch {
	case o.Err == nil:
		return "success"
	case fetch.IsNetworkError(o.Err):
		return "network"
	default:
		return "application"
	}
}

// Invoke probes endpoint and shows the result in displayID. The control is
// disabled for the duration and is re-enabled on every path out, including
// a panic further down.
//
// The returned error only reports unusable ids or a busy control; backend
// failures are part of the Outcome.
func (c *Controller) Invoke(ctx context.Context, endpoint, controlID, displayID string) (*Outcome, error) {
	if _, ok := c.page.Control(controlID); !ok {
		return nil, fmt.Errorf("control %q: %w", controlID, ErrUnknownElement)
	}
	region, ok := c.page.Region(displayID)
	if !ok {
		return nil, fmt.Errorf("region %q: %w", displayID, ErrUnknownElement)
	}
	if region.Kind != KindResponse {
		return nil, fmt.Errorf("region %q: %w", displayID, ErrNotResponseArea)
	}

	if err := c.setBusy(controlID); err != nil {
		return nil, err
	}
	defer c.clearBusy(controlID)

	_ = c.page.SetRegion(displayID, LoadingText, false, StatusLoading)

	outcome := c.probe(ctx, endpoint)
	_ = c.page.SetRegion(displayID, outcome.Content, false, outcome.Status)

	metrics.RecordProbe(c.labels.Label(endpoint), string(outcome.Status))
	if outcome.Err != nil {
		logger.Warn("Probe failed",
			logger.String("endpoint", endpoint),
			logger.String("control", controlID),
			logger.Bool("network_error", fetch.IsNetworkError(outcome.Err)),
			logger.Err(outcome.Err))
	} else {
		logger.Info("Probe succeeded",
			logger.String("endpoint", endpoint),
			logger.String("control", controlID))
	}

	return outcome, nil
}

func (c *Controller) probe(ctx context.Context, endpoint string) *Outcome {
	resp, err := c.fetcher.Get(ctx, endpoint)
	if err != nil {
		return networkOutcome(endpoint, err)
	}

	var body interface{}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		// An unreadable body fails the same way an unreachable backend does
		return networkOutcome(endpoint, err)
	}

	if !resp.OK() {
		msg := errorMessage(body)
		return &Outcome{
			Status:  StatusError,
			Content: "Error: " + msg,
			Err:     &fetch.ApplicationError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: msg},
		}
	}

	return &Outcome{Status: StatusSuccess, Content: successContent(body, resp.Body)}
}

// successContent shows structured bodies indented and scalar bodies as
// plain text
func successContent(decoded interface{}, raw []byte) string {
	switch v := decoded.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return FormatContent(json.RawMessage(raw))
	}
}

func networkOutcome(endpoint string, err error) *Outcome {
	if !fetch.IsNetworkError(err) {
		err = &fetch.NetworkError{Endpoint: endpoint, Err: err}
	}
	return &Outcome{
		Status:  StatusError,
		Content: "Network Error: " + err.Error(),
		Err:     err,
	}
}

func (c *Controller) setBusy(controlID string) error {
	var busy bool
	err := c.page.UpdateControl(controlID, func(ctl *Control) {
		if ctl.Disabled {
			busy = true
			return
		}
		ctl.Disabled = true
		ctl.Label = strings.Replace(ctl.Label, idleWord, busyWord, 1)
		ctl.AddClass(BusyClass)
	})
	if err != nil {
		return err
	}
	if busy {
		return fmt.Errorf("control %q: %w", controlID, ErrControlBusy)
	}
	return nil
}

func (c *Controller) clearBusy(controlID string) {
	_ = c.page.UpdateControl(controlID, func(ctl *Control) {
		ctl.Disabled = false
		ctl.Label = strings.Replace(ctl.Label, busyWord, idleWord, 1)
		ctl.RemoveClass(BusyClass)
	})
}
