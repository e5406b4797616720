package notification

import (
	"context"

	"halo/models"
)

// Mailer delivers a single outbound email.
type Mailer interface {
	Send(ctx context.Context, msg models.EmailPayload) error
}
