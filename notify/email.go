/*
# Module: notify/email.go
Summary email delivery through Amazon SES.

## Linked Modules
- [notify/render](./render.go) - Email body rendering
- [types/summary](../types/summary.go) - Summary structures

## Tags
notify, email, ses

## Exports
Notifier, SESNotifier, NewSESNotifier

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "notify/email.go" ;
    code:description "Summary email delivery through Amazon SES" ;
    code:linksTo [
        code:name "notify/render" ;
        code:path "./render.go" ;
        code:relationship "Email body rendering"
    ], [
        code:name "types/summary" ;
        code:path "../types/summary.go" ;
        code:relationship "Summary structures"
    ] ;
    code:exports :Notifier, :SESNotifier, :NewSESNotifier ;
    code:tags "notify", "email", "ses" .
<!-- End LinkedDoc RDF -->
*/
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sesv2types "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"location-ingest/types"
)

// Notifier delivers an aggregated summary to its recipient. Delivery
// failures are returned, never swallowed: the job that triggered the
// summary fails with them.
type Notifier interface {
	SendSummary(ctx context.Context, s types.Summary) error
}

// SESNotifier implements Notifier using Amazon SES, sending from one
// configured sender to one configured recipient.
type SESNotifier struct {
	client    *sesv2.Client
	sender    string
	recipient string
}

// NewSESNotifier creates a new SES-backed notifier
func NewSESNotifier(client *sesv2.Client, sender, recipient string) *SESNotifier {
	return &SESNotifier{
		client:    client,
		sender:    sender,
		recipient: recipient,
	}
}

// SendSummary renders the HTML and text bodies and sends them as one
// email.
func (n *SESNotifier) SendSummary(ctx context.Context, s types.Summary) error {
	if n.client == nil {
		return fmt.Errorf("SES client not initialized")
	}

	htmlBody, err := RenderHTML(s)
	if err != nil {
		return err
	}
	textBody := RenderText(s)
	subject := SubjectFor(time.Now())

	_, err = n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination: &sesv2types.Destination{
			ToAddresses: []string{n.recipient},
		},
		Content: &sesv2types.EmailContent{
			Simple: &sesv2types.Message{
				Subject: &sesv2types.Content{Data: aws.String(subject)},
				Body: &sesv2types.Body{
					Html: &sesv2types.Content{Data: aws.String(htmlBody)},
					Text: &sesv2types.Content{Data: aws.String(textBody)},
				},
			},
		},
	})
	if err != nil {
		log.Printf("❌ Failed to send summary email: %v", err)
		return fmt.Errorf("failed to send summary email: %w", err)
	}

	log.Printf("📧 Summary email sent: device_id=%s locations=%d", s.DeviceID, s.TotalLocations)
	return nil
}
