package teams

import (
	"context"
	"fmt"

	"github.com/aigovern/admin-api/internal/task"
)

// Emitters holds the notification emitters for every supported task kind.
// Each emitter decodes its named arguments from the dispatch payload; a
// missing or mistyped key is an argument-binding error surfaced to the
// dispatcher, not pre-validated here.
type Emitters struct {
	client *Client
}

// NewEmitters creates the emitter set over the given client.
func NewEmitters(client *Client) *Emitters {
	return &Emitters{client: client}
}

// RegisterAll populates the registry with one emitter per known task kind.
// Called once at startup, before the runner starts.
func (e *Emitters) RegisterAll(registry *task.Registry) error {
	emitters := map[task.Kind]task.Emitter{
		task.KindApprovalRequested:       e.EmitApprovalRequested,
		task.KindQualityEventLogged:      e.EmitQualityEventLogged,
		task.KindUsageReportReady:        e.EmitUsageReportReady,
		task.KindSecurityReviewRequested: e.EmitSecurityReviewRequested,
		task.KindComplianceStatusChanged: e.EmitComplianceStatusChanged,
	}

	for kind, emitter := range emitters {
		if err := registry.Register(kind, emitter); err != nil {
			return fmt.Errorf("failed to register emitter: %w", err)
		}
	}

	return nil
}

// EmitApprovalRequested notifies the governance channel that a user asked
// for additional usage credits.
func (e *Emitters) EmitApprovalRequested(ctx context.Context, p task.Payload) error {
	userID, err := stringArg(p, "user_id")
	if err != nil {
		return err
	}
	userName, err := stringArg(p, "user_name")
	if err != nil {
		return err
	}
	userEmail, err := stringArg(p, "user_email")
	if err != nil {
		return err
	}
	credits, err := floatArg(p, "requested_credits")
	if err != nil {
		return err
	}
	reason, err := stringArg(p, "reason")
	if err != nil {
		return err
	}

	card := NewMessageCard("Credit approval requested", "Credit approval requested")
	card.ThemeColor = "f0ad4e"
	card.Text = fmt.Sprintf("%s requested %.1f credits.", userName, credits)
	card.Sections = []Section{{Facts: []Fact{
		{Name: "User", Value: fmt.Sprintf("%s (%s)", userName, userID)},
		{Name: "Email", Value: userEmail},
		{Name: "Credits", Value: fmt.Sprintf("%.1f", credits)},
		{Name: "Reason", Value: reason},
	}}}

	return e.client.PostCard(ctx, card)
}

// EmitQualityEventLogged notifies the channel about a logged data-quality
// event.
func (e *Emitters) EmitQualityEventLogged(ctx context.Context, p task.Payload) error {
	datasetID, err := stringArg(p, "dataset_id")
	if err != nil {
		return err
	}
	severity, err := stringArg(p, "severity")
	if err != nil {
		return err
	}
	detail, err := stringArg(p, "detail")
	if err != nil {
		return err
	}

	card := NewMessageCard("Data quality event", "Data quality event")
	if severity == "critical" {
		card.ThemeColor = "d9534f"
	}
	card.Text = detail
	card.Sections = []Section{{Facts: []Fact{
		{Name: "Dataset", Value: datasetID},
		{Name: "Severity", Value: severity},
	}}}

	return e.client.PostCard(ctx, card)
}

// EmitUsageReportReady posts the scheduled usage rollup summary.
func (e *Emitters) EmitUsageReportReady(ctx context.Context, p task.Payload) error {
	totalCalls, err := floatArg(p, "total_calls")
	if err != nil {
		return err
	}
	totalCredits, err := floatArg(p, "total_credits")
	if err != nil {
		return err
	}
	window, err := stringArg(p, "window")
	if err != nil {
		return err
	}

	card := NewMessageCard("Usage report", "Usage report")
	card.Text = fmt.Sprintf("Usage for %s: %.0f calls, %.1f credits.", window, totalCalls, totalCredits)

	return e.client.PostCard(ctx, card)
}

// EmitSecurityReviewRequested notifies reviewers about a new review request.
func (e *Emitters) EmitSecurityReviewRequested(ctx context.Context, p task.Payload) error {
	reviewID, err := stringArg(p, "review_id")
	if err != nil {
		return err
	}
	datasetID, err := stringArg(p, "dataset_id")
	if err != nil {
		return err
	}
	requestedBy, err := stringArg(p, "requested_by")
	if err != nil {
		return err
	}
	reason, err := stringArg(p, "reason")
	if err != nil {
		return err
	}

	card := NewMessageCard("Security review requested", "Security review requested")
	card.ThemeColor = "5bc0de"
	card.Text = reason
	card.Sections = []Section{{Facts: []Fact{
		{Name: "Review", Value: reviewID},
		{Name: "Dataset", Value: datasetID},
		{Name: "Requested by", Value: requestedBy},
	}}}

	return e.client.PostCard(ctx, card)
}

// EmitComplianceStatusChanged notifies the channel that a dataset moved to a
// new compliance state.
func (e *Emitters) EmitComplianceStatusChanged(ctx context.Context, p task.Payload) error {
	datasetID, err := stringArg(p, "dataset_id")
	if err != nil {
		return err
	}
	state, err := stringArg(p, "state")
	if err != nil {
		return err
	}

	card := NewMessageCard("Compliance status changed", "Compliance status changed")
	if state == "flagged" {
		card.ThemeColor = "d9534f"
	}
	card.Text = fmt.Sprintf("Dataset %s is now %s.", datasetID, state)

	return e.client.PostCard(ctx, card)
}

// stringArg extracts a required string argument from the payload.
func stringArg(p task.Payload, key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", key, v)
	}
	return s, nil
}

// floatArg extracts a required numeric argument from the payload. JSON
// decoding always yields float64 for numbers; integers arriving from
// in-process callers are accepted too.
func floatArg(p task.Payload, key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("argument %q must be a number, got %T", key, v)
	}
}
