package alerting

import (
	"github.com/rs/zerolog/log"

	"vulcan-monitor-go/internal/models"
)

// Notifier performs the side effect of a routing decision. Immediate alerts
// go out on the messaging bus for downstream escalation (SMS, email, siren);
// routine alerts are only logged.
type Notifier struct {
	publisher models.MessagePublisher
	subject   string
}

// NewNotifier creates a notifier. publisher may be nil, in which case
// immediate alerts degrade to high-priority log entries.
func NewNotifier(publisher models.MessagePublisher, subject string) *Notifier {
	return &Notifier{
		publisher: publisher,
		subject:   subject,
	}
}

// Immediate escalates a dangerous, high-confidence alert.
func (n *Notifier) Immediate(record *models.AlertRecord) {
	log.Warn().
		Str("alert_id", record.ID).
		Str("camera_id", record.Result.CameraID).
		Float64("confidence", record.Result.MaxConfidence()).
		Msg("IMMEDIATE alert")

	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(n.subject, record); err != nil {
		log.Error().
			Err(err).
			Str("alert_id", record.ID).
			Str("subject", n.subject).
			Msg("Failed to publish immediate alert")
	}
}

// Routine records a plain log entry for a non-escalating alert.
func (n *Notifier) Routine(record *models.AlertRecord) {
	log.Info().
		Str("alert_id", record.ID).
		Str("camera_id", record.Result.CameraID).
		Int("detections", len(record.Result.Detections)).
		Msg("Routine alert")
}
