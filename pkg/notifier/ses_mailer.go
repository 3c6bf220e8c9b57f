package notifier

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type (
	// EmailSender is the slice of the SES client the mailer uses.
	EmailSender interface {
		SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	}

	sesMailer struct {
		client    EmailSender
		sender    string
		recipient string
	}
)

func NewSESMailer(client EmailSender, sender string, recipient string) Mailer {
	return &sesMailer{
		client:    client,
		sender:    sender,
		recipient: recipient,
	}
}

func (m *sesMailer) Send(ctx context.Context, subject string, htmlBody string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{m.recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	})
	return err
}
