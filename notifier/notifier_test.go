package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	subject string
	message string
}

type recordingSink struct {
	sent []sent
	err  error
}

func (r *recordingSink) Publish(_ context.Context, subject, message string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sent{subject: subject, message: message})
	return nil
}

func s(v string) events.DynamoDBAttributeValue { return events.NewStringAttribute(v) }
func n(v string) events.DynamoDBAttributeValue { return events.NewNumberAttribute(v) }

func member(name string) events.DynamoDBAttributeValue {
	return events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{"name": s(name), "role": s("Dev")})
}

func teamImage(attrs map[string]events.DynamoDBAttributeValue) map[string]events.DynamoDBAttributeValue {
	img := map[string]events.DynamoDBAttributeValue{
		"team_id":   s("alpha"),
		"team_name": s("Alpha"),
		"use_case":  n("0"),
	}
	for k, v := range attrs {
		img[k] = v
	}
	return img
}

func modify(old, updated map[string]events.DynamoDBAttributeValue) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventName: "MODIFY",
		Change:    events.DynamoDBStreamRecord{OldImage: old, NewImage: updated},
	}
}

func newTestNotifier() (*Notifier, *recordingSink) {
	sink := &recordingSink{}
	return New(sink, "AAIS 2026 EUC Hackathon", "https://portal.example.com/login.html"), sink
}

func TestHandle_InsertAnnouncesNewTeam(t *testing.T) {
	notifier, sink := newTestNotifier()

	err := notifier.Handle(context.Background(), events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{{
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{NewImage: teamImage(map[string]events.DynamoDBAttributeValue{
			"created_at": s("2026-01-10T09:00:00Z"),
		})},
	}}})
	require.NoError(t, err)
	require.Len(t, sink.sent, 1)

	msg := sink.sent[0]
	assert.Equal(t, "🎮 New Team Registered: Alpha", msg.subject)
	assert.Contains(t, msg.message, "AAIS 2026 EUC HACKATHON - NEW TEAM REGISTRATION")
	assert.Contains(t, msg.message, "Team Name: Alpha\nTeam ID: alpha\nRegistered: 2026-01-10T09:00:00Z")
	assert.Contains(t, msg.message, "View all teams at: https://portal.example.com/login.html")
}

func TestHandle_InsertFallsBackToTeamID(t *testing.T) {
	notifier, sink := newTestNotifier()

	img := teamImage(nil)
	delete(img, "team_name")
	require.NoError(t, notifier.Handle(context.Background(), events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		{EventName: "INSERT", Change: events.DynamoDBStreamRecord{NewImage: img}},
	}}))
	require.Len(t, sink.sent, 1)
	assert.Equal(t, "🎮 New Team Registered: alpha", sink.sent[0].subject)
}

func TestHandle_IdenticalModifyIsSilent(t *testing.T) {
	notifier, sink := newTestNotifier()
	img := teamImage(map[string]events.DynamoDBAttributeValue{
		"members":              events.NewListAttribute([]events.DynamoDBAttributeValue{member("Ada")}),
		"solution_description": s("same"),
	})

	require.NoError(t, notifier.Handle(context.Background(), events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{modify(img, img)}}))
	assert.Empty(t, sink.sent)
}

func TestHandle_UseCaseSelection(t *testing.T) {
	notifier, sink := newTestNotifier()

	old := teamImage(nil)
	updated := teamImage(map[string]events.DynamoDBAttributeValue{"use_case": n("2")})
	require.NoError(t, notifier.Handle(context.Background(), events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{modify(old, updated)}}))

	require.Len(t, sink.sent, 1)
	assert.Equal(t, "📝 Team Update: Alpha", sink.sent[0].subject)
	assert.Contains(t, sink.sent[0].message, "AAIS 2026 EUC HACKATHON - TEAM UPDATE")
	assert.Contains(t, sink.sent[0].message, "Team \"Alpha\" has updated their submission:\n\n• Selected Use Case: RobCo Industries [Speed-Driven]\n")
	assert.Equal(t, 1, strings.Count(sink.sent[0].message, "• "))
}

func TestTeamUpdate_ChangeLines(t *testing.T) {
	notifier, _ := newTestNotifier()
	longSolution := strings.Repeat("é", 200)

	tests := []struct {
		name    string
		old     map[string]events.DynamoDBAttributeValue
		updated map[string]events.DynamoDBAttributeValue
		want    []string
	}{
		{
			name:    "unknown use case label",
			updated: map[string]events.DynamoDBAttributeValue{"use_case": n("9")},
			want:    []string{"• Selected Use Case: Use Case 9"},
		},
		{
			name:    "clearing the use case is silent",
			old:     map[string]events.DynamoDBAttributeValue{"use_case": n("3")},
			updated: map[string]events.DynamoDBAttributeValue{"use_case": n("0")},
		},
		{
			name:    "member count change lists named members",
			old:     map[string]events.DynamoDBAttributeValue{"members": events.NewListAttribute([]events.DynamoDBAttributeValue{member("Ada")})},
			updated: map[string]events.DynamoDBAttributeValue{"members": events.NewListAttribute([]events.DynamoDBAttributeValue{member("Ada"), member(""), member("Linus")})},
			want:    []string{"• Team Members (2): Ada, Linus"},
		},
		{
			name:    "unnamed members are not announced",
			updated: map[string]events.DynamoDBAttributeValue{"members": events.NewListAttribute([]events.DynamoDBAttributeValue{member("")})},
		},
		{
			name:    "solution preview is truncated",
			updated: map[string]events.DynamoDBAttributeValue{"solution_description": s(longSolution)},
			want:    []string{"• Solution Description Updated:\n    \"" + strings.Repeat("é", 150) + "...\""},
		},
		{
			name:    "cleared solution is silent",
			old:     map[string]events.DynamoDBAttributeValue{"solution_description": s("before")},
			updated: map[string]events.DynamoDBAttributeValue{"solution_description": s("")},
		},
		{
			name:    "services listed",
			updated: map[string]events.DynamoDBAttributeValue{"services_used": events.NewListAttribute([]events.DynamoDBAttributeValue{s("Lambda"), s("S3")})},
			want:    []string{"• AWS Services (2): Lambda, S3"},
		},
		{
			name:    "attributes of the wrong type are ignored",
			updated: map[string]events.DynamoDBAttributeValue{"use_case": s("2"), "members": s("everyone")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, message, ok := notifier.teamUpdate(image(teamImage(tt.old)), image(teamImage(tt.updated)))
			if len(tt.want) == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			for _, line := range tt.want {
				assert.Contains(t, message, line)
			}
			assert.Equal(t, len(tt.want), strings.Count(message, "• "))
		})
	}
}

func TestHandle_SubjectTruncatedAndFailuresSwallowed(t *testing.T) {
	notifier, sink := newTestNotifier()
	name := strings.Repeat("ß", 120)
	record := events.DynamoDBEventRecord{
		EventName: "INSERT",
		Change:    events.DynamoDBStreamRecord{NewImage: teamImage(map[string]events.DynamoDBAttributeValue{"team_name": s(name)})},
	}

	require.NoError(t, notifier.Handle(context.Background(), events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{record}}))
	require.Len(t, sink.sent, 1)
	assert.Equal(t, 100, len([]rune(sink.sent[0].subject)))

	sink.err = errors.New("sns unavailable")
	assert.NoError(t, notifier.Handle(context.Background(), events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{record, {EventName: "REMOVE"}}}))
}

type fakeSNS struct {
	input *sns.PublishInput
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	id := "msg-1"
	return &sns.PublishOutput{MessageId: &id}, nil
}

func TestSNSSink_Publish(t *testing.T) {
	client := &fakeSNS{}
	sink := &SNSSink{Client: client, TopicArn: "arn:aws:sns:us-east-1:000000000000:notifications"}

	require.NoError(t, sink.Publish(context.Background(), "subject", "body"))
	require.NotNil(t, client.input)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:notifications", *client.input.TopicArn)
	assert.Equal(t, "subject", *client.input.Subject)
	assert.Equal(t, "body", *client.input.Message)
}
