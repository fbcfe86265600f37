package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-leave/internal/approver"
	"go-leave/internal/events"

	"go.uber.org/zap"
)

const defaultWebhookTimeout = 5 * time.Second

// ApproverDirectory lists the approvers covering an employee.
type ApproverDirectory interface {
	ListForEmployee(ctx context.Context, target approver.Target) ([]approver.ApproverResponse, error)
}

// WebhookNotifier posts lifecycle events as {"text": ...} to a chat webhook.
type WebhookNotifier struct {
	url       string
	client    *http.Client
	approvers ApproverDirectory
	logger    *zap.Logger
}

func NewWebhookNotifier(url string, client *http.Client, approvers ApproverDirectory, logger ...*zap.Logger) *WebhookNotifier {
	l := zap.L().Named("notification.webhook")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.webhook")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultWebhookTimeout}
	}
	return &WebhookNotifier{url: url, client: client, approvers: approvers, logger: l}
}

type webhookMessage struct {
	Text string `json:"text"`
}

// HandleLeaveEvent formats evt and delivers it. An empty URL disables delivery.
func (w *WebhookNotifier) HandleLeaveEvent(ctx context.Context, evt events.LeaveLifecycleEvent) error {
	if w.url == "" {
		w.logger.Debug("webhook disabled, dropping event", zap.String("event_type", evt.EventType))
		return nil
	}

	var names []string
	if evt.EventType == events.LeaveSubmittedEvent && w.approvers != nil {
		names = w.approverNames(ctx, evt)
	}

	body, err := json.Marshal(webhookMessage{Text: FormatMessage(evt, names)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}

func (w *WebhookNotifier) approverNames(ctx context.Context, evt events.LeaveLifecycleEvent) []string {
	list, err := w.approvers.ListForEmployee(ctx, approver.Target{
		EmployeeID: evt.EmployeeID,
		Org:        evt.Org,
		Department: evt.Department,
		Division:   evt.Division,
		Unit:       evt.Unit,
	})
	if err != nil {
		w.logger.Warn("approver lookup failed", zap.String("employee_id", evt.EmployeeID), zap.Error(err))
		return nil
	}
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	return names
}

// FormatMessage renders the chat text for evt.
func FormatMessage(evt events.LeaveLifecycleEvent, approvers []string) string {
	who := evt.EmployeeName
	if who == "" {
		who = evt.EmployeeID
	}
	period := evt.StartDate
	if evt.EndDate != evt.StartDate {
		period += " to " + evt.EndDate
	}
	if evt.Session != "" && evt.Session != "FULL" {
		period += " (" + evt.Session + ")"
	}

	var b strings.Builder
	switch evt.EventType {
	case events.LeaveSubmittedEvent:
		fmt.Fprintf(&b, "New leave request from %s: %s %s, %s day(s).", who, evt.Kind, period, evt.RequestedDays)
		if len(approvers) > 0 {
			fmt.Fprintf(&b, " Waiting for: %s.", strings.Join(approvers, ", "))
		}
	case events.LeaveDecidedEvent:
		fmt.Fprintf(&b, "Leave request of %s was %s: %s %s, %s day(s).", who, strings.ToLower(evt.Status), evt.Kind, period, evt.RequestedDays)
		if evt.Reason != "" {
			fmt.Fprintf(&b, " Reason: %s", evt.Reason)
		}
	default:
		fmt.Fprintf(&b, "Leave %s for %s: %s.", evt.EventType, who, period)
	}
	return b.String()
}
