package notifier

import (
	"context"

	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Sink delivers one notification.
type Sink interface {
	Publish(ctx context.Context, subject, message string) error
}

// SNSAPI is the subset of *sns.Client the sink uses.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ SNSAPI = (*sns.Client)(nil)

type SNSSink struct {
	Client   SNSAPI
	TopicArn string
}

func (s *SNSSink) Publish(ctx context.Context, subject, message string) error {
	out, err := s.Client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.TopicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return err
	}
	logging.Log.Debugf("NOTIFIER: published message %s", aws.ToString(out.MessageId))
	return nil
}

// LogSink writes notifications to the log, for runs without a topic.
type LogSink struct{}

func (LogSink) Publish(_ context.Context, subject, message string) error {
	logging.Log.WithField("subject", subject).Info(message)
	return nil
}
